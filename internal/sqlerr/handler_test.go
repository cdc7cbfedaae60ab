package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/openenergydashboard/oed-server/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		Message:        `duplicate key value violates unique constraint "users_email_key"`,
		TableName:      "users",
		ConstraintName: "users_email_key",
	}

	httpErr := asHTTPError(t, HandleError(fmt.Errorf("insert user: %w", pgErr)))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A User with this Email already exists", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHandleError_NotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23502", TableName: "users", ColumnName: "password_hash"}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "USER_REQUIRED", httpErr.Code)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "password_hash", httpErr.Errors[0].Field)
}

func TestHandleError_InvalidEnumValue(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "22P02", Message: `invalid input value for enum user_type: "root"`}

	httpErr := asHTTPError(t, HandleError(pgErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "RECORD_INVALID", httpErr.Code)
}

func TestHandleError_UnknownPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "XX000", Message: "internal error"}

	httpErr := asHTTPError(t, HandleError(pgErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "Internal Server Error", httpErr.Message)
}

func TestHandleError_NoRows(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(fmt.Errorf("%susers: %w", TableMarker, pgx.ErrNoRows)))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "User not found", httpErr.Message)

	httpErr = asHTTPError(t, HandleError(pgx.ErrNoRows))
	assert.Equal(t, "Resource not found", httpErr.Message)
}

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewForbiddenError("nope", false)
	assert.Same(t, original, HandleError(original))
}

func TestHandleError_Timeout(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(fmt.Errorf("get users: %w", context.DeadlineExceeded)))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "Request timed out", httpErr.Message)
}

func TestHandleError_Unknown(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("connection reset by peer")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.NotContains(t, httpErr.Message, "connection reset")
}

func TestErrCode(t *testing.T) {
	converted := ConvertPgError(&pgconn.PgError{Code: "23503", Severity: "FATAL"})

	assert.Equal(t, ForeignKeyViolation, ErrCode(fmt.Errorf("wrap: %w", converted)))
	assert.Equal(t, SeverityFatal, converted.Severity)
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
	assert.Equal(t, UniqueViolation, ErrCode(fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23505"})))

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(converted, &pgErr))
}

func TestMapSeverity_Unknown(t *testing.T) {
	assert.Equal(t, SeverityError, MapSeverity("WHATEVER"))
	assert.Equal(t, SeverityNotice, MapSeverity("NOTICE"))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_users_email"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("users_email_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("users_pkey"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}

func TestGetEntityName(t *testing.T) {
	assert.Equal(t, "Meter", getEntityName("", "meter_id"))
	assert.Equal(t, "User", getEntityName("users", ""))
	assert.Equal(t, "record", getEntityName("", ""))
}
