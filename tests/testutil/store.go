package testutil

import (
	"context"
	"testing"

	"github.com/nhle/quicklist/internal/store"
)

// NewTestStore creates an in-memory RecordStore with all migrations
// applied. It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.RecordStore {
	t.Helper()

	s, err := store.OpenRecordStore(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NewTestHandle creates a bare in-memory Handle with no schema, for tests
// exercising the query engine directly.
func NewTestHandle(t *testing.T) *store.Handle {
	t.Helper()

	h, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test handle: %v", err)
	}

	t.Cleanup(func() {
		if err := h.Close(); err != nil {
			t.Errorf("closing test handle: %v", err)
		}
	})

	return h
}
