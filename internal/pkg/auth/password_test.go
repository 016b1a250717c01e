package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Str0ng@Pass")
	require.NoError(t, err)
	assert.NotEqual(t, "Str0ng@Pass", hash)

	assert.True(t, CheckPassword(hash, "Str0ng@Pass"))
	assert.False(t, CheckPassword(hash, "str0ng@pass"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"all classes present", "Str0ng@Pass", true},
		{"too short", "S1@a", false},
		{"no uppercase", "str0ng@pass", false},
		{"no lowercase", "STR0NG@PASS", false},
		{"no digit", "Strong@Pass", false},
		{"no special", "Str0ngPass", false},
		{"empty", "", false},
		{"exactly eight", "Aa1@aaaa", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStrongPassword(tt.password))
		})
	}
}
