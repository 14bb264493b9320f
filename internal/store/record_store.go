package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nhle/quicklist/internal/model"
)

// selectRecords is the canonical record projection. Column order matches
// decodeRecord.
const selectRecords = `SELECT id, description, priority, completed_at, created_at FROM todos`

// insertRecord is shared by Add and AddMany so bulk imports reuse one
// prepared handle across the whole batch.
const insertRecord = `INSERT INTO todos (description, priority) VALUES (?, ?)`

// RecordStore is the domain layer over the database: schema setup, the
// in-memory record snapshot, and all record mutations. It owns the Handle
// and inherits its single-threaded usage contract.
type RecordStore struct {
	h       *Handle
	records []model.Record
}

// NewRecordStore wraps an open handle. Call Migrate before any other
// operation.
func NewRecordStore(h *Handle) *RecordStore {
	return &RecordStore{h: h}
}

// OpenRecordStore opens the database at path, runs migrations, and returns
// a ready store.
func OpenRecordStore(ctx context.Context, path string) (*RecordStore, error) {
	h, err := Open(path)
	if err != nil {
		return nil, err
	}
	s := NewRecordStore(h)
	if err := s.Migrate(ctx); err != nil {
		h.Close()
		return nil, err
	}
	return s, nil
}

// Migrate applies any outstanding schema migrations in order. Safe to run
// on every process start.
func (s *RecordStore) Migrate(ctx context.Context) error {
	currentVersion := 0

	tableCount, err := queryOne(ctx, s.h,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
		func(r Row) (int64, error) { return r.Int(0) },
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		v, err := queryOne(ctx, s.h,
			"SELECT COALESCE(MAX(version), 0) FROM schema_version",
			func(r Row) (int64, error) { return r.Int(0) },
		)
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
		currentVersion = int(v)
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if err := s.h.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// decodeRecord materializes one record from a result row.
func decodeRecord(r Row) (model.Record, error) {
	var rec model.Record

	id, err := r.Int(0)
	if err != nil {
		return rec, err
	}
	desc, err := r.Text(1)
	if err != nil {
		return rec, err
	}
	prio, err := r.Int(2)
	if err != nil {
		return rec, err
	}
	completed, err := r.NullTime(3)
	if err != nil {
		return rec, err
	}
	created, err := r.Time(4)
	if err != nil {
		return rec, err
	}

	rec.ID = id
	rec.Description = desc
	rec.Priority = int(prio)
	rec.CompletedAt = completed
	rec.CreatedAt = created
	return rec, nil
}

// ListAll discards the in-memory snapshot, re-queries every record in
// creation order (id as tie-break for records created in the same instant),
// and returns the rebuilt snapshot.
func (s *RecordStore) ListAll(ctx context.Context) ([]model.Record, error) {
	s.records = nil

	recs, err := Query(ctx, s.h,
		selectRecords+" ORDER BY created_at ASC, id ASC",
		decodeRecord,
	)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	s.records = recs
	return s.records, nil
}

// Records returns the current snapshot without querying. It is stale by
// design between ListAll calls; callers decide when to refresh.
func (s *RecordStore) Records() []model.Record {
	return s.records
}

// Add inserts one record. The snapshot is not updated; callers must
// re-list to observe the new record.
func (s *RecordStore) Add(ctx context.Context, description string, priority int) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("record description must not be empty")
	}

	err := Execute(ctx, s.h, insertRecord,
		Text(description),
		Int(int64(model.NormalizePriority(priority))),
	)
	if err != nil {
		return fmt.Errorf("adding record: %w", err)
	}
	return nil
}

// AddMany inserts all descriptions in a single transaction, reusing one
// prepared statement for the whole batch. Priority defaults to 0 for
// imported items. If any insert fails the transaction is rolled back and
// the error propagates: all-or-nothing. An audit row recording the batch is
// written in the same transaction.
func (s *RecordStore) AddMany(ctx context.Context, descriptions []string) error {
	if len(descriptions) == 0 {
		return nil
	}

	tx, err := s.h.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, insertRecord)
	if err != nil {
		return &PrepareError{Stmt: insertRecord, Err: err}
	}
	defer stmt.Close()

	for i, d := range descriptions {
		// Bindings are cleared by each Exec; the empty-description CHECK
		// fires at the engine rather than here so the batch fails whole.
		if _, err := stmt.ExecContext(ctx, d, 0); err != nil {
			return &StepError{Err: fmt.Errorf("inserting item %d: %w", i+1, err)}
		}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO imports (id, count) VALUES (?, ?)",
		uuid.New().String(), len(descriptions),
	)
	if err != nil {
		return &StepError{Err: fmt.Errorf("recording import batch: %w", err)}
	}

	if err := tx.Commit(); err != nil {
		return &ExecutionError{Stmt: "COMMIT", Err: err}
	}
	return nil
}

// Complete stamps the record's completion time with the engine's own clock.
// Completing an already-completed record refreshes the timestamp.
func (s *RecordStore) Complete(ctx context.Context, id int64) error {
	err := Execute(ctx, s.h,
		"UPDATE todos SET completed_at = datetime('now', 'localtime') WHERE id = ?",
		Int(id),
	)
	if err != nil {
		return fmt.Errorf("completing record %d: %w", id, err)
	}
	return nil
}

// Uncomplete clears the record's completion time.
func (s *RecordStore) Uncomplete(ctx context.Context, id int64) error {
	err := Execute(ctx, s.h,
		"UPDATE todos SET completed_at = NULL WHERE id = ?",
		Int(id),
	)
	if err != nil {
		return fmt.Errorf("uncompleting record %d: %w", id, err)
	}
	return nil
}

// SetPriority stores the priority wrapped into [0, model.PriorityLevels).
// Callers wanting "bump" pass current+1 and rely on the wrap.
func (s *RecordStore) SetPriority(ctx context.Context, id int64, priority int) error {
	err := Execute(ctx, s.h,
		"UPDATE todos SET priority = ? WHERE id = ?",
		Int(int64(model.NormalizePriority(priority))),
		Int(id),
	)
	if err != nil {
		return fmt.Errorf("setting priority on record %d: %w", id, err)
	}
	return nil
}

// Delete removes the record. The search-index delete trigger fires
// transitively.
func (s *RecordStore) Delete(ctx context.Context, id int64) error {
	err := Execute(ctx, s.h, "DELETE FROM todos WHERE id = ?", Int(id))
	if err != nil {
		return fmt.Errorf("deleting record %d: %w", id, err)
	}
	return nil
}

// Search runs a full-text query against the shadow index and returns
// matching records, best match first. The snapshot is not touched.
func (s *RecordStore) Search(ctx context.Context, term string) ([]model.Record, error) {
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}

	recs, err := Query(ctx, s.h, `
		SELECT t.id, t.description, t.priority, t.completed_at, t.created_at
		FROM todos_fts
		JOIN todos t ON t.id = todos_fts.rowid
		WHERE todos_fts MATCH ?
		ORDER BY rank`,
		decodeRecord,
		Text(term),
	)
	if err != nil {
		return nil, fmt.Errorf("searching records: %w", err)
	}
	return recs, nil
}

// Imports returns the bulk-import audit trail, newest first.
func (s *RecordStore) Imports(ctx context.Context) ([]model.ImportBatch, error) {
	batches, err := Query(ctx, s.h,
		"SELECT id, count, created_at FROM imports ORDER BY created_at DESC, id",
		func(r Row) (model.ImportBatch, error) {
			var b model.ImportBatch
			var err error
			if b.ID, err = r.Text(0); err != nil {
				return b, err
			}
			n, err := r.Int(1)
			if err != nil {
				return b, err
			}
			b.Count = int(n)
			if b.CreatedAt, err = r.Time(2); err != nil {
				return b, err
			}
			return b, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("listing import batches: %w", err)
	}
	return batches, nil
}

// Count returns the total number of records.
func (s *RecordStore) Count(ctx context.Context) (int, error) {
	n, err := queryOne(ctx, s.h, "SELECT COUNT(*) FROM todos",
		func(r Row) (int64, error) { return r.Int(0) },
	)
	if err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return int(n), nil
}

// CountCompleted returns the number of completed records.
func (s *RecordStore) CountCompleted(ctx context.Context) (int, error) {
	n, err := queryOne(ctx, s.h,
		"SELECT COUNT(*) FROM todos WHERE completed_at IS NOT NULL",
		func(r Row) (int64, error) { return r.Int(0) },
	)
	if err != nil {
		return 0, fmt.Errorf("counting completed records: %w", err)
	}
	return int(n), nil
}

// Close drops the snapshot and releases the database connection. Safe to
// call more than once.
func (s *RecordStore) Close() error {
	s.records = nil
	return s.h.Close()
}
