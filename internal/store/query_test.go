package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/quicklist/internal/store"
	"github.com/nhle/quicklist/tests/testutil"
)

// scratchSchema is a wide table exercising every storage class.
const scratchSchema = `
CREATE TABLE scratch (
	id      INTEGER PRIMARY KEY,
	label   TEXT NOT NULL,
	ratio   REAL NOT NULL,
	payload BLOB,
	note    TEXT,
	seen_at DATETIME
);`

type scratchRow struct {
	ID      int64
	Label   string
	Ratio   float64
	Payload []byte
	Note    *string
	SeenAt  *time.Time
}

func decodeScratch(r store.Row) (scratchRow, error) {
	var row scratchRow
	var err error

	if row.ID, err = r.Int(0); err != nil {
		return row, err
	}
	if row.Label, err = r.Text(1); err != nil {
		return row, err
	}
	if row.Ratio, err = r.Float(2); err != nil {
		return row, err
	}
	if row.Payload, err = r.NullBlob(3); err != nil {
		return row, err
	}
	if row.Note, err = r.NullText(4); err != nil {
		return row, err
	}
	if row.SeenAt, err = r.NullTime(5); err != nil {
		return row, err
	}
	return row, nil
}

func TestQuery_RoundTrip(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewTestHandle(t)
	require.NoError(t, h.Exec(ctx, scratchSchema))

	note := "a note"
	when := time.Date(2026, 8, 25, 9, 30, 0, 0, time.Local)

	err := store.Execute(ctx, h,
		"INSERT INTO scratch (label, ratio, payload, note, seen_at) VALUES (?, ?, ?, ?, ?)",
		store.Text("first"), store.Float(0.5), store.Blob([]byte{0xde, 0xad}),
		store.NullText(&note), store.NullTime(&when),
	)
	require.NoError(t, err)

	err = store.Execute(ctx, h,
		"INSERT INTO scratch (label, ratio, payload, note, seen_at) VALUES (?, ?, ?, ?, ?)",
		store.Text("second"), store.Float(1.25), store.Null(),
		store.NullText(nil), store.NullTime(nil),
	)
	require.NoError(t, err)

	rows, err := store.Query(ctx, h,
		"SELECT id, label, ratio, payload, note, seen_at FROM scratch ORDER BY id",
		decodeScratch,
	)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "first", rows[0].Label)
	assert.Equal(t, 0.5, rows[0].Ratio)
	assert.Equal(t, []byte{0xde, 0xad}, rows[0].Payload)
	require.NotNil(t, rows[0].Note)
	assert.Equal(t, note, *rows[0].Note)
	require.NotNil(t, rows[0].SeenAt)
	// The driver may hand DATETIME columns back as time.Time or text, and
	// neither carries a zone. Compare the wall-clock rendering.
	assert.Equal(t,
		when.Format("2006-01-02 15:04:05"),
		rows[0].SeenAt.Format("2006-01-02 15:04:05"))

	assert.Equal(t, "second", rows[1].Label)
	assert.Nil(t, rows[1].Payload)
	assert.Nil(t, rows[1].Note)
	assert.Nil(t, rows[1].SeenAt)
}

func TestQuery_OrderPreserved(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewTestHandle(t)
	require.NoError(t, h.Exec(ctx, scratchSchema))

	for i, label := range []string{"c", "a", "b"} {
		err := store.Execute(ctx, h,
			"INSERT INTO scratch (id, label, ratio) VALUES (?, ?, ?)",
			store.Int(int64(i+1)), store.Text(label), store.Float(0),
		)
		require.NoError(t, err)
	}

	labels, err := store.Query(ctx, h,
		"SELECT label FROM scratch ORDER BY label",
		func(r store.Row) (string, error) { return r.Text(0) },
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, labels)
}

func TestQuery_PrepareError(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewTestHandle(t)

	_, err := store.Query(ctx, h, "SELEC nonsense",
		func(r store.Row) (int64, error) { return r.Int(0) },
	)
	require.Error(t, err)

	var prepErr *store.PrepareError
	assert.ErrorAs(t, err, &prepErr)
}

func TestQuery_StepError(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewTestHandle(t)
	require.NoError(t, h.Exec(ctx, scratchSchema))

	// NOT NULL violation surfaces while stepping, not while preparing.
	err := store.Execute(ctx, h,
		"INSERT INTO scratch (label, ratio) VALUES (NULL, ?)",
		store.Float(1),
	)
	require.Error(t, err)

	var stepErr *store.StepError
	assert.ErrorAs(t, err, &stepErr)
	assert.True(t, store.IsConstraintError(err))
}

func TestQuery_DecodeTypeError(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewTestHandle(t)
	require.NoError(t, h.Exec(ctx, scratchSchema))
	require.NoError(t, store.Execute(ctx, h,
		"INSERT INTO scratch (label, ratio) VALUES (?, ?)",
		store.Text("not a number"), store.Float(0),
	))

	_, err := store.Query(ctx, h, "SELECT label FROM scratch",
		func(r store.Row) (int64, error) { return r.Int(0) },
	)
	require.Error(t, err)

	var decErr *store.DecodeTypeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, 0, decErr.Column)
	assert.Equal(t, "integer", decErr.Want)
	assert.Equal(t, "text", decErr.Got)
}

func TestQuery_NullIntoRequiredField(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewTestHandle(t)
	require.NoError(t, h.Exec(ctx, scratchSchema))
	require.NoError(t, store.Execute(ctx, h,
		"INSERT INTO scratch (label, ratio, note) VALUES (?, ?, NULL)",
		store.Text("x"), store.Float(0),
	))

	_, err := store.Query(ctx, h, "SELECT note FROM scratch",
		func(r store.Row) (string, error) { return r.Text(0) },
	)
	require.Error(t, err)

	var decErr *store.DecodeTypeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, "null", decErr.Got)
}

func TestQuery_TooManyParameters(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewTestHandle(t)

	args := make([]store.Value, 32767)
	for i := range args {
		args[i] = store.Int(int64(i))
	}

	_, err := store.Query(ctx, h, "SELECT 1",
		func(r store.Row) (int64, error) { return r.Int(0) },
		args...,
	)
	require.Error(t, err)

	var bindErr *store.BindError
	assert.ErrorAs(t, err, &bindErr)
}

func TestExecute_DiscardsRows(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewTestHandle(t)
	require.NoError(t, h.Exec(ctx, scratchSchema))

	// A SELECT through Execute steps and discards without decoding.
	require.NoError(t, store.Execute(ctx, h, "SELECT 1 WHERE ? > 0", store.Int(5)))
}

func TestHandle_OpenFailure(t *testing.T) {
	_, err := store.Open("/nonexistent-dir/sub/never.db")
	require.Error(t, err)

	var connErr *store.ConnectionError
	assert.ErrorAs(t, err, &connErr)
}

func TestHandle_CloseTwice(t *testing.T) {
	h, err := store.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, h.Close())
	require.NoError(t, h.Close())
}
