// Package models contains data structures for the application's domain models.
package models

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// User represents a registered account. The Posts relation is intentionally
// write-only: it is never preloaded, callers go through
// repository.PostRepository.ListByAuthor instead.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:256" json:"-"`
	Posts        []Post `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName keeps the singular table name used by the storage schema.
func (User) TableName() string {
	return "user"
}

func (u *User) String() string {
	return fmt.Sprintf("<User %s>", u.Username)
}

// SetPassword hashes the plaintext with bcrypt and stores the result in
// PasswordHash. Persisting the record is the caller's responsibility.
func (u *User) SetPassword(plaintext string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hashed)
	return nil
}

// CheckPassword reports whether the plaintext matches the stored hash using
// bcrypt's constant-time comparison. A user that never had a password set
// always fails the check.
func (u *User) CheckPassword(plaintext string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) == nil
}

// HasPassword reports whether a password hash is stored for the user.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
