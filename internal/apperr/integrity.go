package apperr

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Constraint names follow the usual naming convention: uq_* unique,
// pk_* primary key, fk_* foreign key, ck_* check.
var constraintClasses = []struct {
	prefix  string
	status  int
	message string
}{
	{"uq_", http.StatusConflict, "Duplicate value for unique field(s)."},
	{"pk_", http.StatusConflict, "Duplicate primary key."},
	{"fk_", http.StatusBadRequest, "Invalid reference: related record not found."},
	{"ck_", http.StatusBadRequest, "Invalid value: violates check constraint."},
}

var dupKeyDetail = regexp.MustCompile(`Key\s+\((.*?)\)=\((.*?)\)\s+already exists`)

// IsIntegrity reports whether err looks like a storage constraint violation.
func IsIntegrity(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23") // integrity constraint class
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}

// FromStorage reclassifies a low-level integrity violation into the taxonomy.
// This is the one place raw storage errors are translated instead of passed
// through: constraint-name prefix first, SQLSTATE second, message parse last.
func FromStorage(err error) *Error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		for _, cl := range constraintClasses {
			if strings.HasPrefix(pgErr.ConstraintName, cl.prefix) {
				return newErr(cl.status, cl.message).
					With("constraint", pgErr.ConstraintName)
			}
		}
		if e := fromDetail(pgErr.Detail); e != nil {
			return e
		}
		switch pgErr.Code {
		case "23505":
			return Conflict("Duplicate value for unique field(s).")
		case "23503":
			return BadRequest("Invalid reference: related record not found.")
		case "23514":
			return BadRequest("Invalid value: violates check constraint.")
		}
	}

	if e := fromDetail(err.Error()); e != nil {
		return e
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
		return Conflict("Duplicate value for unique field(s).")
	}
	return BadRequest("Database integrity error.")
}

func fromDetail(detail string) *Error {
	m := dupKeyDetail.FindStringSubmatch(detail)
	if m == nil {
		return nil
	}
	return Conflict("Duplicate value for field(s): " + m[1]).
		With("fields", m[1]).
		With("values", m[2])
}
