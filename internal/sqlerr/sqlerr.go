// Package sqlerr handles database driver errors.
//
// It parses SQLSTATE codes from the PostgreSQL driver and converts them
// into application errors (e.g. a unique violation becomes a
// "Bad Request" with a USER_ALREADY_EXISTS code).
package sqlerr

import "fmt"

// Code is a driver-independent category for a database error.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	ExclusionViolation  Code = "exclusion_violation"
	InvalidTextRep      Code = "invalid_text_representation"
	TooManyConnections  Code = "too_many_connections"
	QueryCanceled       Code = "query_canceled"
)

// SQLSTATE values, see https://www.postgresql.org/docs/current/errcodes-appendix.html
var pgCodes = map[string]Code{
	"23502": NotNullViolation,
	"23503": ForeignKeyViolation,
	"23505": UniqueViolation,
	"23514": CheckViolation,
	"23P01": ExclusionViolation,
	"22P02": InvalidTextRep,
	"53300": TooManyConnections,
	"57014": QueryCanceled,
}

// MapCode maps a raw SQLSTATE onto a Code. Unknown states map to Other.
func MapCode(sqlState string) Code {
	if code, ok := pgCodes[sqlState]; ok {
		return code
	}
	return Other
}

// Severity mirrors the PostgreSQL message severity levels.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// MapSeverity maps the driver's severity string. Unknown values map to SeverityError.
func MapSeverity(severity string) Severity {
	switch s := Severity(severity); s {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return s
	default:
		return SeverityError
	}
}

// Error is the normalized form of a PostgreSQL error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}
