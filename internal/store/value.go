package store

import "time"

// maxBindParameters is SQLITE_MAX_VARIABLE_NUMBER as compiled into the
// modernc driver. Exceeding it is rejected before prepare.
const maxBindParameters = 32766

// timeLayout is how timestamps are written to and read from the database.
// It matches SQLite's datetime() output.
const timeLayout = "2006-01-02 15:04:05"

type valueKind int

const (
	kindNull valueKind = iota
	kindInt
	kindFloat
	kindText
	kindBlob
)

func (k valueKind) String() string {
	switch k {
	case kindInt:
		return "integer"
	case kindFloat:
		return "float"
	case kindText:
		return "text"
	case kindBlob:
		return "blob"
	default:
		return "null"
	}
}

// Value is one statement argument, tagged with the storage class it binds
// as. Arguments are bound positionally, left to right. Only the five SQLite
// storage classes exist; anything else must be converted by the caller
// before it reaches the binder.
type Value struct {
	kind valueKind
	i    int64
	f    float64
	s    string
	b    []byte
}

// Int binds a 64-bit integer.
func Int(v int64) Value { return Value{kind: kindInt, i: v} }

// Float binds a 64-bit float.
func Float(v float64) Value { return Value{kind: kindFloat, f: v} }

// Text binds a string. The driver copies the bytes before the statement
// finishes, so the caller's buffer is not retained.
func Text(v string) Value { return Value{kind: kindText, s: v} }

// Blob binds raw bytes.
func Blob(v []byte) Value { return Value{kind: kindBlob, b: v} }

// Null binds SQL NULL.
func Null() Value { return Value{kind: kindNull} }

// NullText binds the string if present, NULL otherwise.
func NullText(v *string) Value {
	if v == nil {
		return Null()
	}
	return Text(*v)
}

// NullInt binds the integer if present, NULL otherwise.
func NullInt(v *int64) Value {
	if v == nil {
		return Null()
	}
	return Int(*v)
}

// TimeVal binds a timestamp as datetime text.
func TimeVal(v time.Time) Value { return Text(v.Format(timeLayout)) }

// NullTime binds the timestamp if present, NULL otherwise.
func NullTime(v *time.Time) Value {
	if v == nil {
		return Null()
	}
	return TimeVal(*v)
}

// driverArg converts the tagged value into the argument shape the driver
// binds natively.
func (v Value) driverArg() any {
	switch v.kind {
	case kindInt:
		return v.i
	case kindFloat:
		return v.f
	case kindText:
		return v.s
	case kindBlob:
		return v.b
	default:
		return nil
	}
}

// bindArgs converts values into driver arguments, enforcing the engine's
// bind-parameter cap.
func bindArgs(values []Value) ([]any, error) {
	if len(values) > maxBindParameters {
		return nil, &BindError{Err: errTooManyParameters}
	}
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v.driverArg()
	}
	return args, nil
}
