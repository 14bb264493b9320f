package store

// The generic query engine: prepare, bind, step, decode, finalize. Every
// statement handle is released on every exit path via defers; nothing here
// retries, all failures propagate to the caller typed.

import (
	"context"
)

// RowFunc decodes one result row into a T.
type RowFunc[T any] func(Row) (T, error)

// Query prepares stmt, binds args positionally, steps through the result
// set decoding each row with dec, and finalizes the statement. Rows are
// returned in statement-execution order.
func Query[T any](ctx context.Context, h *Handle, stmt string, dec RowFunc[T], args ...Value) ([]T, error) {
	argv, err := bindArgs(args)
	if err != nil {
		return nil, err
	}

	st, err := h.Prepare(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	rows, err := st.QueryxContext(ctx, argv...)
	if err != nil {
		return nil, &StepError{Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &StepError{Err: err}
	}

	buf := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range buf {
		ptrs[i] = &buf[i]
	}

	var out []T
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &StepError{Err: err}
		}
		v, err := dec(Row{cols: buf})
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, &StepError{Err: err}
	}

	return out, nil
}

// Execute runs a parameterized statement expecting no decoded results. Any
// rows the engine produces (triggers, RETURNING) are stepped through and
// discarded without touching their columns.
func Execute(ctx context.Context, h *Handle, stmt string, args ...Value) error {
	argv, err := bindArgs(args)
	if err != nil {
		return err
	}

	st, err := h.Prepare(ctx, stmt)
	if err != nil {
		return err
	}
	defer st.Close()

	rows, err := st.QueryxContext(ctx, argv...)
	if err != nil {
		return &StepError{Err: err}
	}
	defer rows.Close()

	for rows.Next() {
	}
	if err := rows.Err(); err != nil {
		return &StepError{Err: err}
	}

	return nil
}

// queryOne runs stmt and returns the single decoded row. Used internally
// for COUNT-style scalar reads.
func queryOne[T any](ctx context.Context, h *Handle, stmt string, dec RowFunc[T], args ...Value) (T, error) {
	var zero T
	vs, err := Query(ctx, h, stmt, dec, args...)
	if err != nil {
		return zero, err
	}
	if len(vs) == 0 {
		return zero, &StepError{Err: errNoRows}
	}
	return vs[0], nil
}
