package domain

import "time"

// Classroom represents a reservable classroom.
// Identity is immutable; attributes are admin-mutable. Inactive classrooms
// are excluded from new-request listings but keep their reservation history
type Classroom struct {
	ID          int64
	Name        string
	Capacity    int
	Description *string
	IsActive    bool
}

// Term represents an academic term. It defines the legal date envelope for
// reservation requests: every occurrence date must fall inside it
type Term struct {
	ID        int64
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// Contains reports whether the requested recurrence window lies fully
// within the term's date envelope
func (t *Term) Contains(rangeStart, rangeEnd time.Time) bool {
	return !rangeStart.Before(t.StartDate) && !rangeEnd.After(t.EndDate)
}
