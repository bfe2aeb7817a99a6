// file: repository/token_repository.go

package repository

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"tailorpro/logger"
	"tailorpro/model"
	"time"

	"github.com/sirupsen/logrus"
)

var ErrInvalidRefreshToken = errors.New("refresh token is invalid or expired")

// TokenRepository holds the refresh tokens issued by the stand-in server.
type TokenRepository struct {
	mu     sync.Mutex
	tokens map[string]model.RefreshToken
	now    func() time.Time
}

func NewTokenRepository() *TokenRepository {
	return &TokenRepository{tokens: make(map[string]model.RefreshToken), now: time.Now}
}

// Issue creates a new opaque refresh token for the user.
func (r *TokenRepository) Issue(userID, clientID string, ttl time.Duration) (model.RefreshToken, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return model.RefreshToken{}, fmt.Errorf("generate refresh token: %w", err)
	}
	token := model.RefreshToken{
		Token:     hex.EncodeToString(raw),
		UserID:    userID,
		ClientID:  clientID,
		ExpiresAt: r.now().Add(ttl),
	}

	r.mu.Lock()
	r.tokens[token.Token] = token
	r.mu.Unlock()

	logger.Log.WithFields(logrus.Fields{
		"user_id":    userID,
		"expires_at": token.ExpiresAt,
	}).Info("Refresh token issued")
	return token, nil
}

// Consume removes the token and returns it when it is valid for clientID.
// A refresh token can therefore be redeemed only once.
func (r *TokenRepository) Consume(token, clientID string) (model.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tokens[token]
	if !ok {
		return model.RefreshToken{}, ErrInvalidRefreshToken
	}
	delete(r.tokens, token)
	if stored.ClientID != clientID || r.now().After(stored.ExpiresAt) {
		return model.RefreshToken{}, ErrInvalidRefreshToken
	}
	return stored, nil
}
