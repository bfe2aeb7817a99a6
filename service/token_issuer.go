package service

import (
	"errors"
	"fmt"
	"tailorpro/logger"
	"tailorpro/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidAccessToken = errors.New("invalid or expired access token")

// TokenIssuer signs and verifies the HS256 access tokens of the stand-in
// server.
type TokenIssuer struct {
	secret    []byte
	accessTTL time.Duration
	now       func() time.Time
}

func NewTokenIssuer(secret string, accessTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), accessTTL: accessTTL, now: time.Now}
}

// GenerateAccessToken mints an access token for the account.
func (i *TokenIssuer) GenerateAccessToken(account *model.Account, clientID string) (string, error) {
	now := i.now()
	claims := &model.AppClaims{
		UserID:   account.ID,
		ClientID: clientID,
		Roles:    account.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   account.Name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		logger.Log.WithError(err).WithField("uid", account.ID).Error("Failed to sign JWT")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}
	return tokenString, nil
}

// ParseAccessToken verifies the signature and expiry of tokenString.
func (i *TokenIssuer) ParseAccessToken(tokenString string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAccessToken, err)
	}
	return claims, nil
}

// ExpiresIn is the lifetime of access tokens in seconds.
func (i *TokenIssuer) ExpiresIn() int64 {
	return int64(i.accessTTL / time.Second)
}
