// file: repository/sql_token_store_test.go

package repository

import (
	"context"
	"errors"
	"regexp"
	"tailorpro/model"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLTokenStore_Get(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewSQLTokenStore(db, "default")
	query := regexp.QuoteMeta(`SELECT value FROM client_session WHERE profile = $1 AND key = $2`)

	t.Run("found", func(t *testing.T) {
		dbMock.ExpectQuery(query).WithArgs("default", KeyAuthToken).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("A1"))

		value, err := store.Get(context.Background(), KeyAuthToken)

		assert.NoError(t, err)
		assert.Equal(t, "A1", value)
	})

	t.Run("not found", func(t *testing.T) {
		dbMock.ExpectQuery(query).WithArgs("default", KeyRefreshToken).
			WillReturnRows(sqlmock.NewRows([]string{"value"}))

		_, err := store.Get(context.Background(), KeyRefreshToken)

		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestSQLTokenStore_SetCredential(t *testing.T) {
	upsert := regexp.QuoteMeta(`INSERT INTO client_session (profile, key, value, updated_at)`)

	t.Run("success", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dbMock.ExpectBegin()
		dbMock.ExpectExec(upsert).WithArgs("default", KeyAuthToken, "A2").WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectExec(upsert).WithArgs("default", KeyRefreshToken, "R2").WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectCommit()

		err = NewSQLTokenStore(db, "default").SetCredential(context.Background(), model.Credential{AccessToken: "A2", RefreshToken: "R2"})

		assert.NoError(t, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("rollback on failure", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dbMock.ExpectBegin()
		dbMock.ExpectExec(upsert).WithArgs("default", KeyAuthToken, "A2").WillReturnError(errors.New("disk full"))
		dbMock.ExpectRollback()

		err = NewSQLTokenStore(db, "default").SetCredential(context.Background(), model.Credential{AccessToken: "A2", RefreshToken: "R2"})

		assert.Error(t, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestSQLTokenStore_Clear(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	query := regexp.QuoteMeta(`DELETE FROM client_session WHERE profile = $1 AND key = ANY($2)`)
	dbMock.ExpectExec(query).WithArgs("default", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 3))
	dbMock.ExpectExec(query).WithArgs("default", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 0))

	store := NewSQLTokenStore(db, "default")
	assert.NoError(t, store.Clear(context.Background()))
	assert.NoError(t, store.Clear(context.Background()))
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
