package users_test

import (
	"testing"

	"github.com/invoiceslite/go-invoices-server/users"
	"github.com/stretchr/testify/require"
)

func TestValidatePasswordStrength(t *testing.T) {
	for _, password := range []string{"Password123", "Abcdefg1", "xY3abcdefgh"} {
		require.NoError(t, users.ValidatePasswordStrength(password))
	}

	tests := []struct {
		name     string
		password string
	}{
		{"too short", "Pass12"},
		{"no uppercase", "password123"},
		{"no lowercase", "PASSWORD123"},
		{"no digit", "PasswordOnly"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, users.ValidatePasswordStrength(tt.password))
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := users.HashPassword("Password123")
	require.NoError(t, err)
	require.NotEqual(t, "Password123", hash)

	require.True(t, users.CheckPasswordHash("Password123", hash))
	require.False(t, users.CheckPasswordHash("password123", hash))
	require.False(t, users.CheckPasswordHash("Password123", "not-a-hash"))
}
