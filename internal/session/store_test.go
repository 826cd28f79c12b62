package session

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"office-asset-web/internal/model"
)

func setupTestDB(t testing.TB) (*sql.DB, sqlmock.Sqlmock, Store) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return db, mock, NewPostgresStore(db)
}

func TestCreate_Success(t *testing.T) {
	db, mock, store := setupTestDB(t)
	defer db.Close()

	now := time.Now().UTC()
	s := Session{
		ID:          uuid.New(),
		Username:    "binhnv",
		AccountType: model.AccountStaff,
		AccessToken: "token",
		ExpiresAt:   now.Add(time.Hour),
		CreatedAt:   now,
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO web_sessions (id, username, account_type, access_token, expires_at, created_at) VALUES ($1, $2, $3, $4, $5, $6)`)).
		WithArgs(s.ID, s.Username, "STAFF", s.AccessToken, s.ExpiresAt, s.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := store.Create(context.Background(), s)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DatabaseError(t *testing.T) {
	db, mock, store := setupTestDB(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO web_sessions").WillReturnError(errors.New("connection refused"))

	err := store.Create(context.Background(), Session{ID: uuid.New()})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create session")
}

func TestGet_Success(t *testing.T) {
	db, mock, store := setupTestDB(t)
	defer db.Close()

	id := uuid.New()
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "username", "account_type", "access_token", "expires_at", "created_at"}).
		AddRow(id.String(), "binhnv", "ADMIN", "token", now.Add(time.Hour), now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, account_type, access_token, expires_at, created_at FROM web_sessions WHERE id = $1`)).
		WithArgs(id).
		WillReturnRows(rows)

	s, err := store.Get(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, s.ID)
	assert.Equal(t, model.AccountAdmin, s.AccountType)
	assert.Equal(t, "token", s.AccessToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	db, mock, store := setupTestDB(t)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery("SELECT id, username").WithArgs(id).WillReturnError(sql.ErrNoRows)

	_, err := store.Get(context.Background(), id)

	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestDelete(t *testing.T) {
	db, mock, store := setupTestDB(t)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM web_sessions WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.Delete(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpired(t *testing.T) {
	db, mock, store := setupTestDB(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM web_sessions WHERE expires_at <= $1`)).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := store.DeleteExpired(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
