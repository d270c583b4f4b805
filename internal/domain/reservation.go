package domain

import "time"

// ReservationStatus represents the status of a reservation instance
type ReservationStatus string

const (
	StatusPending  ReservationStatus = "pending"
	StatusApproved ReservationStatus = "approved"
	StatusRejected ReservationStatus = "rejected"
)

// Reservation represents one concrete dated occurrence of a recurring
// classroom reservation request. Sibling occurrences created by the same
// request share the recurrence fields (Weekday, RangeStart, RangeEnd) and
// form a derived group, see group.go
type Reservation struct {
	ID          int64
	UserID      int64
	ClassroomID int64
	TermID      *int64

	// Recurrence window of the request this instance was expanded from.
	// Identifies the group, not this instance's own date
	Weekday    int // 1=Monday .. 7=Sunday
	RangeStart time.Time
	RangeEnd   time.Time

	// Concrete occurrence
	StartTime time.Time
	EndTime   time.Time

	Status         ReservationStatus
	AdminNote      *string
	IsHoliday      bool
	ConflictReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true if the instance awaits an admin decision
func (r *Reservation) IsPending() bool {
	return r.Status == StatusPending
}

// IsApproved returns true if the instance has been approved
func (r *Reservation) IsApproved() bool {
	return r.Status == StatusApproved
}

// IsRejected returns true if the instance has been rejected
func (r *Reservation) IsRejected() bool {
	return r.Status == StatusRejected
}

// IsFinal returns true if the instance is in a terminal state.
// Approved and Rejected are immutable history
func (r *Reservation) IsFinal() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected
}

// CanBeCancelled returns true if the owner may still cancel the instance
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending
}

// SameSlotScope reports whether two instances compete for the same
// classroom slot scope: same classroom, same term, same weekday.
// Only instances within the same scope can ever conflict
func (r *Reservation) SameSlotScope(other *Reservation) bool {
	return r.ClassroomID == other.ClassroomID &&
		equalTermID(r.TermID, other.TermID) &&
		r.Weekday == other.Weekday
}

func equalTermID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// UserReservationsFilter фильтр для выборки резерваций пользователя
type UserReservationsFilter struct {
	UserID    int64
	Status    *ReservationStatus // опционально
	StartDate *time.Time         // RangeStart >= StartDate (опционально)
	EndDate   *time.Time         // RangeEnd <= EndDate (опционально)
	Page      int                // с 1
	PageSize  int
}

// SiblingsFilter фильтр для выборки конкурирующих резерваций одного слота
// (класс + семестр + день недели). Statuses пустой = любые статусы
type SiblingsFilter struct {
	ClassroomID int64
	TermID      *int64
	Weekday     int
	Statuses    []ReservationStatus
}
