package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/trueconf-console/internal/model"
)

// Claims represents JWT claims with token type and optional flash payload.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string           `json:"typ"`
	Flash     *model.FlashData `json:"flash,omitempty"`
}

// JWT signs and verifies console cookies with symmetric HMAC.
type JWT struct {
	secretKey string
	now       func() time.Time
}

// NewJWT creates a new JWT codec with the provided secret key.
func NewJWT(secretKey string) *JWT {
	return &JWT{secretKey: secretKey, now: time.Now}
}

const (
	typeSession = "session"
	typeFlash   = "flash"
)

// GenerateSessionToken creates an authenticated session token valid for ttl.
func (j *JWT) GenerateSessionToken(ttl time.Duration) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(ttl)

	tokenString, err := j.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		TokenType: typeSession,
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ParseSessionToken validates a session token and returns the session it carries.
func (j *JWT) ParseSessionToken(tokenString string) (model.SessionState, error) {
	claims, err := j.parse(tokenString, typeSession)
	if err != nil {
		return model.SessionState{}, fmt.Errorf("failed to parse session token: %w", err)
	}

	state := model.SessionState{Authenticated: true}
	if claims.ExpiresAt != nil {
		state.ExpiresAt = claims.ExpiresAt.Time
	}

	return state, nil
}

// GenerateFlashToken creates a token carrying data for the next page render.
func (j *JWT) GenerateFlashToken(data model.FlashData, ttl time.Duration) (string, error) {
	now := j.now()

	tokenString, err := j.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: typeFlash,
		Flash:     &data,
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign flash token: %w", err)
	}

	return tokenString, nil
}

// ParseFlashToken validates a flash token and extracts its payload.
func (j *JWT) ParseFlashToken(tokenString string) (model.FlashData, error) {
	claims, err := j.parse(tokenString, typeFlash)
	if err != nil {
		return model.FlashData{}, fmt.Errorf("failed to parse flash token: %w", err)
	}
	if claims.Flash == nil {
		return model.FlashData{}, nil
	}

	return *claims.Flash, nil
}

func (j *JWT) sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.secretKey))
}

func (j *JWT) parse(tokenString, tokenType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithTimeFunc(j.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("token type mismatch: %s", claims.TokenType)
	}

	return claims, nil
}
