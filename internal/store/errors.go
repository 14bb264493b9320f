package store

import (
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ConnectionError reports a failure to open or create the database file.
// It is fatal: callers should surface it immediately rather than retry.
type ConnectionError struct {
	Path string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("opening database %s: %v", e.Path, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ExecutionError reports a statement that the engine could not complete,
// carrying the engine's diagnostic message.
type ExecutionError struct {
	Stmt string
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("executing statement: %v", e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// PrepareError reports statement text the engine could not compile.
type PrepareError struct {
	Stmt string
	Err  error
}

func (e *PrepareError) Error() string {
	return fmt.Sprintf("preparing statement: %v", e.Err)
}

func (e *PrepareError) Unwrap() error { return e.Err }

// BindError reports an argument that could not be attached to its
// parameter slot, including exceeding the engine's bind-parameter cap.
type BindError struct {
	Index int // 1-based parameter position, 0 if not positional
	Err   error
}

func (e *BindError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("binding parameter %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("binding parameters: %v", e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// StepError reports an execution that did not terminate cleanly.
type StepError struct {
	Err error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("stepping statement: %v", e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// DecodeTypeError reports a column whose storage class cannot satisfy the
// requested field type. It indicates a schema/code mismatch, not a
// transient condition.
type DecodeTypeError struct {
	Column int
	Want   string
	Got    string
}

func (e *DecodeTypeError) Error() string {
	return fmt.Sprintf("column %d: cannot decode storage class %s as %s", e.Column, e.Got, e.Want)
}

// errTooManyParameters is the root cause carried by a BindError when a
// statement's argument count exceeds maxBindParameters.
var errTooManyParameters = errors.New("too many bind parameters")

// errNoRows is carried by a StepError when a scalar query produced an
// empty result set.
var errNoRows = errors.New("no rows returned")

// IsConstraintError returns true if err is a SQLITE_CONSTRAINT violation
// (or one of its extended codes).
func IsConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}

// IsBusyError returns true if err is a SQLITE_BUSY error.
func IsBusyError(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_BUSY
	}
	return false
}
