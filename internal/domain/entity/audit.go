package entity

import "time"

// Audit carries the lifecycle fields shared by every aggregate: creation and
// modification stamps, the soft-delete marker, and the optimistic-concurrency
// version compared on every update.
type Audit struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
	Version   int
}

// IsDeleted reports whether the record has been soft-deleted. Deleted records
// are retained in storage but invisible to queries.
func (a *Audit) IsDeleted() bool {
	return a.DeletedAt != nil
}
