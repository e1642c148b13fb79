package service

import (
	"crypto/subtle"

	"github.com/dtroode/trueconf-console/internal/logger"
	"github.com/dtroode/trueconf-console/internal/model"
)

type Auth struct {
	password []byte
	logger   *logger.Logger
}

func NewAuth(password string, logger *logger.Logger) *Auth {
	return &Auth{
		password: []byte(password),
		logger:   logger,
	}
}

// Login checks password against the configured console password.
func (a *Auth) Login(password string) error {
	if subtle.ConstantTimeCompare([]byte(password), a.password) != 1 {
		a.logger.Info("Auth service: rejected login attempt")
		return model.ErrInvalidPassword
	}

	a.logger.Info("Auth service: operator logged in")

	return nil
}
