package model

import "time"

// PriorityLevels is the number of distinct priority values a record can
// hold. Priorities always live in [0, PriorityLevels) and wrap around when
// bumped past the top.
const PriorityLevels = 3

// Record is a single todo item persisted in the local database.
// The ID is assigned by the database on insert and never changes.
type Record struct {
	ID          int64      `json:"id" db:"id"`
	Description string     `json:"description" db:"description"`
	Priority    int        `json:"priority" db:"priority"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// Completed reports whether the record has a completion timestamp.
// The timestamp's presence is the only completion signal; there is no
// separate flag.
func (r Record) Completed() bool {
	return r.CompletedAt != nil
}

// NormalizePriority wraps p into [0, PriorityLevels). Negative inputs wrap
// from the top, so NormalizePriority(-1) == PriorityLevels-1.
func NormalizePriority(p int) int {
	p %= PriorityLevels
	if p < 0 {
		p += PriorityLevels
	}
	return p
}

// ImportBatch records one bulk import: how many lines were inserted and
// when. Written in the same transaction as the inserts themselves.
type ImportBatch struct {
	ID        string    `json:"id" db:"id"`
	Count     int       `json:"count" db:"count"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
