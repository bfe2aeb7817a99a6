// file: repository/token_store.go

package repository

import (
	"context"
	"errors"
	"tailorpro/model"
)

// Keys persisted by every token store.
const (
	KeyAuthToken    = "auth_token"
	KeyRefreshToken = "refresh_token"
	KeyAuthUser     = "auth_user"
)

// SessionKeys are all keys removed by Clear.
var SessionKeys = []string{KeyAuthToken, KeyRefreshToken, KeyAuthUser}

// ErrKeyNotFound is returned by Get when the key holds no value.
var ErrKeyNotFound = errors.New("token store: key not found")

// ITokenStore is the client-side session state: the OAuth credential and the
// serialized profile of the logged in user. Implementations must be safe for
// concurrent use; the last write wins.
type ITokenStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// SetCredential replaces both tokens in one step. An empty refresh token
	// removes the stored one.
	SetCredential(ctx context.Context, cred model.Credential) error
	// Clear removes every session key. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// Lookup reads key and maps ErrKeyNotFound to ("", false, nil).
func Lookup(ctx context.Context, store ITokenStore, key string) (string, bool, error) {
	value, err := store.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, value != "", nil
}
