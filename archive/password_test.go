package archive

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePasswordLength(t *testing.T) {
	tests := []struct {
		length int
		want   int
	}{
		{16, 16},
		{2, MinPasswordLength},
		{500, 128},
	}
	for _, tt := range tests {
		pwd, err := GeneratePassword(tt.length)
		require.NoError(t, err)
		assert.Len(t, pwd, tt.want)
	}
}

func TestGeneratePasswordAlphanumeric(t *testing.T) {
	pwd, err := GeneratePassword(64)
	require.NoError(t, err)
	for _, r := range pwd {
		assert.True(t, strings.ContainsRune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", r), "unexpected rune %q", r)
	}

	other, err := GeneratePassword(64)
	require.NoError(t, err)
	assert.NotEqual(t, pwd, other)
}

func TestValidatePassword(t *testing.T) {
	assert.ErrorIs(t, ValidatePassword(""), ErrWeakPassword)
	assert.ErrorIs(t, ValidatePassword("short"), ErrWeakPassword)
	assert.NoError(t, ValidatePassword("long-enough"))
}
