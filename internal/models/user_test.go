package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPassword(t *testing.T) {
	u := &User{Username: "susan"}

	require.NoError(t, u.SetPassword("correct horse battery staple"))

	assert.True(t, u.HasPassword())
	assert.NotEqual(t, "correct horse battery staple", u.PasswordHash)
	assert.NotContains(t, u.PasswordHash, "correct horse")
	assert.True(t, strings.HasPrefix(u.PasswordHash, "$2"), "expected a bcrypt hash, got %q", u.PasswordHash)
}

func TestSetPasswordProducesUniqueHashes(t *testing.T) {
	a := &User{}
	b := &User{}

	require.NoError(t, a.SetPassword("same-password"))
	require.NoError(t, b.SetPassword("same-password"))

	// bcrypt salts each hash, so equal inputs must not collide.
	assert.NotEqual(t, a.PasswordHash, b.PasswordHash)
}

func TestCheckPassword(t *testing.T) {
	u := &User{Username: "susan"}
	require.NoError(t, u.SetPassword("cat"))

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "correct password", password: "cat", want: true},
		{name: "wrong password", password: "dog", want: false},
		{name: "empty password", password: "", want: false},
		{name: "prefix of correct password", password: "ca", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, u.CheckPassword(tt.password))
		})
	}
}

func TestCheckPasswordUnsetHash(t *testing.T) {
	u := &User{Username: "nohash"}

	// A user without a stored hash fails every check instead of erroring.
	assert.False(t, u.CheckPassword("anything"))
	assert.False(t, u.CheckPassword(""))
	assert.False(t, u.HasPassword())
}

func TestUserString(t *testing.T) {
	u := &User{Username: "susan"}
	assert.Equal(t, "<User susan>", u.String())
}
