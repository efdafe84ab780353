package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIterations = 64

func TestHashPasswordDeterministic(t *testing.T) {
	h1, salt, err := HashPassword("hunter2", "", testIterations)
	require.NoError(t, err)
	require.NotEmpty(t, salt)

	h2, salt2, err := HashPassword("hunter2", salt, testIterations)
	require.NoError(t, err)
	assert.Equal(t, salt, salt2)
	assert.Equal(t, h1, h2)
}

func TestHashPasswordFreshSaltChangesDigest(t *testing.T) {
	h1, s1, err := HashPassword("hunter2", "", testIterations)
	require.NoError(t, err)
	h2, s2, err := HashPassword("hunter2", "", testIterations)
	require.NoError(t, err)

	assert.NotEqual(t, s1, s2)
	assert.NotEqual(t, h1, h2)
}

func TestHashPasswordMalformedSalt(t *testing.T) {
	_, _, err := HashPassword("hunter2", "not-hex", testIterations)
	assert.ErrorIs(t, err, ErrMalformedSalt)
}

func TestVerifyPassword(t *testing.T) {
	hash, salt, err := HashPassword("hunter2", "", testIterations)
	require.NoError(t, err)

	ok, err := VerifyPassword("hunter2", hash, salt, testIterations)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash, salt, testIterations)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = VerifyPassword("hunter2", hash, "zzzz", testIterations)
	assert.ErrorIs(t, err, ErrMalformedSalt)
}

func TestGenerateSaltLength(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)
	assert.Len(t, salt, saltBytes*2)
}
