package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func slot(id int64, day int, start, end string, status ReservationStatus) *Reservation {
	parse := func(v string) time.Time {
		t, _ := time.Parse("2006-01-02 15:04", fmt.Sprintf("2025-09-%02d %s", day, v))
		return t
	}
	return &Reservation{
		ID:          id,
		UserID:      1,
		ClassroomID: 10,
		Weekday:     2,
		StartTime:   parse(start),
		EndTime:     parse(end),
		Status:      status,
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    *Reservation
		b    *Reservation
		want bool
	}{
		{
			name: "partial overlap",
			a:    slot(1, 2, "10:00", "12:00", StatusPending),
			b:    slot(2, 2, "11:00", "13:00", StatusPending),
			want: true,
		},
		{
			name: "containment",
			a:    slot(1, 2, "10:00", "14:00", StatusPending),
			b:    slot(2, 2, "11:00", "12:00", StatusPending),
			want: true,
		},
		{
			name: "touching endpoints do not overlap",
			a:    slot(1, 2, "10:00", "12:00", StatusPending),
			b:    slot(2, 2, "12:00", "14:00", StatusPending),
			want: false,
		},
		{
			name: "disjoint",
			a:    slot(1, 2, "10:00", "11:00", StatusPending),
			b:    slot(2, 2, "13:00", "14:00", StatusPending),
			want: false,
		},
		{
			name: "same window on different dates",
			a:    slot(1, 2, "10:00", "12:00", StatusPending),
			b:    slot(2, 9, "10:00", "12:00", StatusPending),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			require.Equal(t, tt.want, Overlaps(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}

func TestHasApprovedConflict(t *testing.T) {
	candidate := slot(100, 2, "10:00", "12:00", StatusPending)

	t.Run("approved sibling overlapping", func(t *testing.T) {
		existing := []*Reservation{slot(1, 2, "11:00", "13:00", StatusApproved)}
		require.True(t, HasApprovedConflict(candidate, existing))
	})

	t.Run("pending sibling is ignored", func(t *testing.T) {
		existing := []*Reservation{slot(1, 2, "11:00", "13:00", StatusPending)}
		require.False(t, HasApprovedConflict(candidate, existing))
	})

	t.Run("rejected sibling is ignored", func(t *testing.T) {
		existing := []*Reservation{slot(1, 2, "11:00", "13:00", StatusRejected)}
		require.False(t, HasApprovedConflict(candidate, existing))
	})

	t.Run("candidate excluded by id", func(t *testing.T) {
		self := slot(100, 2, "10:00", "12:00", StatusApproved)
		require.False(t, HasApprovedConflict(candidate, []*Reservation{self}))
	})

	t.Run("other classroom out of scope", func(t *testing.T) {
		other := slot(1, 2, "11:00", "13:00", StatusApproved)
		other.ClassroomID = 99
		require.False(t, HasApprovedConflict(candidate, []*Reservation{other}))
	})

	t.Run("term mismatch out of scope", func(t *testing.T) {
		termID := int64(7)
		other := slot(1, 2, "11:00", "13:00", StatusApproved)
		other.TermID = &termID
		require.False(t, HasApprovedConflict(candidate, []*Reservation{other}))
	})
}

func TestHasLiveConflict(t *testing.T) {
	candidate := slot(100, 2, "10:00", "12:00", StatusPending)

	t.Run("pending sibling is a live conflict", func(t *testing.T) {
		existing := []*Reservation{slot(1, 2, "11:00", "13:00", StatusPending)}
		require.True(t, HasLiveConflict(candidate, existing))
	})

	t.Run("approved sibling is a live conflict", func(t *testing.T) {
		existing := []*Reservation{slot(1, 2, "11:00", "13:00", StatusApproved)}
		require.True(t, HasLiveConflict(candidate, existing))
	})

	t.Run("rejected sibling is not", func(t *testing.T) {
		existing := []*Reservation{slot(1, 2, "11:00", "13:00", StatusRejected)}
		require.False(t, HasLiveConflict(candidate, existing))
	})
}

func TestPredicatesAreIndependent(t *testing.T) {
	// Один и тот же pending сосед: живой конфликт есть, одобренного нет
	candidate := slot(100, 2, "10:00", "12:00", StatusPending)
	existing := []*Reservation{slot(1, 2, "11:00", "13:00", StatusPending)}

	require.True(t, HasLiveConflict(candidate, existing))
	require.False(t, HasApprovedConflict(candidate, existing))
}

func TestFindConflictPairs(t *testing.T) {
	a := slot(1, 2, "10:00", "12:00", StatusApproved)
	b := slot(2, 2, "11:00", "13:00", StatusPending)
	rejected := slot(3, 2, "11:30", "12:30", StatusRejected)
	disjoint := slot(4, 2, "15:00", "16:00", StatusPending)

	pairs := FindConflictPairs([]*Reservation{a, b, rejected, disjoint})

	require.Len(t, pairs, 1)
	require.Equal(t, int64(1), pairs[0].Reservation.ID)
	require.Equal(t, int64(2), pairs[0].Conflicting.ID)
	require.Equal(t, b.StartTime, pairs[0].OverlapStart)
	require.Equal(t, a.EndTime, pairs[0].OverlapEnd)
}
