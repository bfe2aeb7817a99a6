// file: repository/sql_token_store.go

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"tailorpro/logger"
	"tailorpro/model"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// SQLTokenStore keeps the session in the client_session table created by the
// db migrations. Profile scopes the rows so several named sessions can share
// one database.
type SQLTokenStore struct {
	DB      *sql.DB
	Profile string
}

func NewSQLTokenStore(db *sql.DB, profile string) *SQLTokenStore {
	return &SQLTokenStore{DB: db, Profile: profile}
}

const upsertSessionKey = `INSERT INTO client_session (profile, key, value, updated_at) VALUES ($1, $2, $3, now())
	ON CONFLICT (profile, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

// Get reads a single session key.
func (s *SQLTokenStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	query := `SELECT value FROM client_session WHERE profile = $1 AND key = $2`
	err := s.DB.QueryRowContext(ctx, query, s.Profile, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("key", key).Error("Failed to execute get session key query")
		return "", err
	}
	return value, nil
}

// Set upserts a single session key.
func (s *SQLTokenStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.DB.ExecContext(ctx, upsertSessionKey, s.Profile, key, value); err != nil {
		logger.Log.WithError(err).WithField("key", key).Error("Failed to execute set session key query")
		return err
	}
	return nil
}

// SetCredential writes both tokens in one transaction.
func (s *SQLTokenStore) SetCredential(ctx context.Context, cred model.Credential) error {
	log := logger.Log.WithFields(logrus.Fields{
		"profile":           s.Profile,
		"has_refresh_token": cred.RefreshToken != "",
	})

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, upsertSessionKey, s.Profile, KeyAuthToken, cred.AccessToken); err != nil {
		log.WithError(err).Error("Failed to store access token")
		return err
	}
	if cred.RefreshToken == "" {
		_, err = tx.ExecContext(ctx, `DELETE FROM client_session WHERE profile = $1 AND key = $2`, s.Profile, KeyRefreshToken)
	} else {
		_, err = tx.ExecContext(ctx, upsertSessionKey, s.Profile, KeyRefreshToken, cred.RefreshToken)
	}
	if err != nil {
		log.WithError(err).Error("Failed to store refresh token")
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// Clear deletes every session key of the profile.
func (s *SQLTokenStore) Clear(ctx context.Context) error {
	query := `DELETE FROM client_session WHERE profile = $1 AND key = ANY($2)`
	if _, err := s.DB.ExecContext(ctx, query, s.Profile, pq.Array(SessionKeys)); err != nil {
		logger.Log.WithError(err).WithField("profile", s.Profile).Error("Failed to execute clear session query")
		return err
	}
	return nil
}
