package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("mat-khau-123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, Verify("mat-khau-123", hash))
	assert.False(t, Verify("mat-khau-124", hash))
	assert.False(t, Verify("mat-khau-123", "not-a-hash"))
}

func TestValidate(t *testing.T) {
	assert.True(t, Validate("12345678"))
	assert.True(t, Validate("admin123456"))
	assert.False(t, Validate("1234567"))
	assert.False(t, Validate(""))
}

func TestHashToken(t *testing.T) {
	h := HashToken("refresh-token-value")

	// SHA256 hex digest, stable across calls
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashToken("refresh-token-value"))
	assert.NotEqual(t, h, HashToken("another-token"))
}
