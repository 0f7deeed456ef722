package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsIntegrity(t *testing.T) {
	assert.False(t, IsIntegrity(nil))
	assert.False(t, IsIntegrity(errors.New("connection refused")))

	assert.True(t, IsIntegrity(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsIntegrity(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsIntegrity(&pgconn.PgError{Code: "42P01"}))

	// textual fallbacks for drivers that don't surface a PgError
	assert.True(t, IsIntegrity(errors.New(`pq: duplicate key value violates unique constraint "uq_users_username"`)))
	assert.True(t, IsIntegrity(errors.New("Error 1062 (23000): Duplicate entry 'bob' for key 'users.uq_users_username'")))
}

func TestFromStorageConstraintPrefix(t *testing.T) {
	cases := []struct {
		constraint string
		status     int
	}{
		{"uq_users_username", http.StatusConflict},
		{"pk_users", http.StatusConflict},
		{"fk_orders_user_id", http.StatusBadRequest},
		{"ck_users_age", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.constraint, func(t *testing.T) {
			err := FromStorage(&pgconn.PgError{Code: "23505", ConstraintName: tc.constraint})
			assert.Equal(t, tc.status, err.Status)
			assert.Equal(t, tc.constraint, err.Payload()["constraint"])
		})
	}
}

func TestFromStorageSQLState(t *testing.T) {
	assert.Equal(t, http.StatusConflict, FromStorage(&pgconn.PgError{Code: "23505"}).Status)
	assert.Equal(t, http.StatusBadRequest, FromStorage(&pgconn.PgError{Code: "23503"}).Status)
	assert.Equal(t, http.StatusBadRequest, FromStorage(&pgconn.PgError{Code: "23514"}).Status)
}

func TestFromStorageDupKeyDetail(t *testing.T) {
	err := FromStorage(&pgconn.PgError{
		Code:   "23505",
		Detail: "Key (username)=(bob) already exists.",
	})

	assert.Equal(t, http.StatusConflict, err.Status)
	assert.Equal(t, "Duplicate value for field(s): username", err.Message)
	p := err.Payload()
	assert.Equal(t, "username", p["fields"])
	assert.Equal(t, "bob", p["values"])
}

func TestFromStorageTextualFallback(t *testing.T) {
	err := FromStorage(errors.New("Error 1062 (23000): Duplicate entry 'bob' for key 'users.uq_users_username'"))
	assert.Equal(t, http.StatusConflict, err.Status)

	err = FromStorage(errors.New("something integrity-ish"))
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "Database integrity error.", err.Message)
}
