package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/trueconf-console/internal/model"
)

func TestJWT_SessionToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret")

	tok, expiresAt, err := j.GenerateSessionToken(time.Hour)
	require.NoError(t, err)

	state, err := j.ParseSessionToken(tok)
	require.NoError(t, err)
	assert.True(t, state.Authenticated)
	assert.WithinDuration(t, expiresAt, state.ExpiresAt, time.Second)
}

func TestJWT_FlashToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret")
	data := model.FlashData{
		Messages: []model.Flash{{Kind: model.FlashError, Message: "User ID and password are required."}},
		OldInput: map[string]string{"id": "alice", "company": "ACME"},
	}

	tok, err := j.GenerateFlashToken(data, time.Minute)
	require.NoError(t, err)

	got, err := j.ParseFlashToken(tok)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestJWT_TokenType_Mismatch(t *testing.T) {
	j := NewJWT("secret")

	flash, err := j.GenerateFlashToken(model.FlashData{}, time.Minute)
	require.NoError(t, err)

	_, err = j.ParseSessionToken(flash)
	require.Error(t, err)
}

func TestJWT_WrongSecret(t *testing.T) {
	tok, _, err := NewJWT("secret").GenerateSessionToken(time.Hour)
	require.NoError(t, err)

	_, err = NewJWT("other").ParseSessionToken(tok)
	require.Error(t, err)
}

func TestJWT_ExpiryValidation(t *testing.T) {
	j := NewJWT("secret")
	issued := time.Now()
	j.now = func() time.Time { return issued }

	tok, _, err := j.GenerateSessionToken(time.Hour)
	require.NoError(t, err)

	j.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = j.ParseSessionToken(tok)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWT_Garbage(t *testing.T) {
	_, err := NewJWT("secret").ParseSessionToken("not-a-token")
	require.Error(t, err)
}
