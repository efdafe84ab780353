package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvc-cinemas/pvc/internal/model"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	p := model.Principal{ID: 7, Username: "alice", Role: model.RoleUser}
	tok, err := NewSessionToken("secret", p, 5)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)

	got, err := ParseSessionToken("secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestSessionTokenCarriesTheatreID(t *testing.T) {
	p := model.Principal{ID: 3, Username: "pvc-east", Role: model.RoleTheatre, TheatreID: 2}
	tok, err := NewSessionToken("secret", p, 5)
	require.NoError(t, err)

	got, err := ParseSessionToken("secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.TheatreID)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	tok, err := NewSessionToken("secret", model.Principal{ID: 1, Username: "alice", Role: model.RoleUser}, 5)
	require.NoError(t, err)

	_, err = ParseSessionToken("other", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionTokenGarbage(t *testing.T) {
	_, err := ParseSessionToken("secret", "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidSession)
}
