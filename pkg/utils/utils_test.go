package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	password := "testpassword"
	hashedPassword, err := HashPassword(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hashedPassword)
	assert.NotEqual(t, password, hashedPassword)
}

func TestCheckPasswordHash(t *testing.T) {
	hashedPassword, err := HashPassword("testpassword")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("testpassword", hashedPassword))
	assert.False(t, CheckPasswordHash("wrongpassword", hashedPassword))
}

func TestIsEmail(t *testing.T) {
	for _, valid := range []string{"test@example.com", "another.test@sub.domain.co.uk"} {
		assert.True(t, IsEmail(valid), valid)
	}
	for _, invalid := range []string{
		"invalid-email",
		"invalid@.com",
		"@example.com",
		"test@example",
		"Bob <bob@example.com>",
	} {
		assert.False(t, IsEmail(invalid), invalid)
	}
}
