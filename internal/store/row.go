package store

import (
	"time"
)

// Row is one decoded result row. Columns are accessed positionally through
// storage-class-checked getters; asking for a type the stored class cannot
// satisfy yields a DecodeTypeError rather than a silent coercion.
type Row struct {
	cols []any
}

// Len returns the number of columns in the row.
func (r Row) Len() int { return len(r.cols) }

// classOf maps the driver's dynamic Go types onto SQLite storage classes.
func classOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case int64:
		return "integer"
	case float64:
		return "float"
	case string, time.Time:
		return "text"
	case []byte:
		return "blob"
	default:
		return "unknown"
	}
}

// Int reads column i as a 64-bit integer. Integer and float storage classes
// are accepted, matching the engine's own numeric column reads.
func (r Row) Int(i int) (int64, error) {
	switch v := r.cols[i].(type) {
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	default:
		return 0, &DecodeTypeError{Column: i, Want: "integer", Got: classOf(r.cols[i])}
	}
}

// Float reads column i as a 64-bit float.
func (r Row) Float(i int) (float64, error) {
	switch v := r.cols[i].(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	default:
		return 0, &DecodeTypeError{Column: i, Want: "float", Got: classOf(r.cols[i])}
	}
}

// Text reads column i as an owned string. Text columns are returned as-is;
// blob columns are duplicated into a string. Any other storage class fails.
func (r Row) Text(i int) (string, error) {
	switch v := r.cols[i].(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", &DecodeTypeError{Column: i, Want: "text", Got: classOf(r.cols[i])}
	}
}

// Blob reads column i as an owned byte slice. The driver's buffer is only
// valid for the current step, so the bytes are always copied.
func (r Row) Blob(i int) ([]byte, error) {
	switch v := r.cols[i].(type) {
	case []byte:
		out := make([]byte, len(v))
		copy(out, v)
		return out, nil
	case string:
		return []byte(v), nil
	default:
		return nil, &DecodeTypeError{Column: i, Want: "blob", Got: classOf(r.cols[i])}
	}
}

// Time reads column i as a timestamp. The driver hands back time.Time for
// columns declared DATETIME and raw text otherwise; both are accepted.
func (r Row) Time(i int) (time.Time, error) {
	switch v := r.cols[i].(type) {
	case time.Time:
		return v, nil
	case string:
		t, err := time.ParseInLocation(timeLayout, v, time.Local)
		if err != nil {
			return time.Time{}, &DecodeTypeError{Column: i, Want: "datetime", Got: "text"}
		}
		return t, nil
	default:
		return time.Time{}, &DecodeTypeError{Column: i, Want: "datetime", Got: classOf(r.cols[i])}
	}
}

// NullBlob reads column i as an optional byte slice.
func (r Row) NullBlob(i int) ([]byte, error) {
	if r.cols[i] == nil {
		return nil, nil
	}
	return r.Blob(i)
}

// NullText reads column i as an optional string.
func (r Row) NullText(i int) (*string, error) {
	if r.cols[i] == nil {
		return nil, nil
	}
	s, err := r.Text(i)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// NullInt reads column i as an optional 64-bit integer.
func (r Row) NullInt(i int) (*int64, error) {
	if r.cols[i] == nil {
		return nil, nil
	}
	n, err := r.Int(i)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// NullTime reads column i as an optional timestamp.
func (r Row) NullTime(i int) (*time.Time, error) {
	if r.cols[i] == nil {
		return nil, nil
	}
	t, err := r.Time(i)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
