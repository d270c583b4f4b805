package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func member(id int64, status ReservationStatus, rangeStart time.Time) *Reservation {
	return &Reservation{
		ID:          id,
		UserID:      1,
		ClassroomID: 10,
		Weekday:     2,
		RangeStart:  rangeStart,
		RangeEnd:    rangeStart.AddDate(0, 3, 0),
		Status:      status,
	}
}

func TestAggregateStatus(t *testing.T) {
	start := date(2025, time.September, 1)

	tests := []struct {
		name    string
		members []*Reservation
		want    GroupAggregateStatus
	}{
		{
			name: "any pending wins",
			members: []*Reservation{
				member(1, StatusApproved, start),
				member(2, StatusPending, start),
				member(3, StatusRejected, start),
			},
			want: GroupPending,
		},
		{
			name: "all approved",
			members: []*Reservation{
				member(1, StatusApproved, start),
				member(2, StatusApproved, start),
			},
			want: GroupApproved,
		},
		{
			name: "approved and rejected is mixed",
			members: []*Reservation{
				member(1, StatusApproved, start),
				member(2, StatusRejected, start),
			},
			want: GroupMixed,
		},
		{
			name: "all rejected is mixed",
			members: []*Reservation{
				member(1, StatusRejected, start),
				member(2, StatusRejected, start),
			},
			want: GroupMixed,
		},
		{
			name:    "empty set is mixed",
			members: nil,
			want:    GroupMixed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, AggregateStatus(tt.members))
		})
	}
}

func TestBuildGroups(t *testing.T) {
	septStart := date(2025, time.September, 1)
	octStart := date(2025, time.October, 1)

	instances := []*Reservation{
		member(5, StatusPending, septStart),
		member(3, StatusApproved, septStart),
		member(4, StatusApproved, septStart),
		member(10, StatusApproved, octStart),
		member(11, StatusApproved, octStart),
	}

	groups := BuildGroups(instances)
	require.Len(t, groups, 2)

	// Сортировка: более поздний RangeStart первым
	require.Equal(t, int64(10), groups[0].AnchorID)
	require.Equal(t, 2, groups[0].Count)
	require.Equal(t, GroupApproved, groups[0].Status)

	// Якорь - минимальный id участников
	require.Equal(t, int64(3), groups[1].AnchorID)
	require.Equal(t, 3, groups[1].Count)
	require.Equal(t, GroupPending, groups[1].Status)
}

func TestBuildGroups_SeparatesByKey(t *testing.T) {
	start := date(2025, time.September, 1)
	termA := int64(1)
	termB := int64(2)

	inTermA := member(1, StatusPending, start)
	inTermA.TermID = &termA
	inTermB := member(2, StatusPending, start)
	inTermB.TermID = &termB
	otherUser := member(3, StatusPending, start)
	otherUser.UserID = 42

	groups := BuildGroups([]*Reservation{inTermA, inTermB, otherUser})
	require.Len(t, groups, 3)
}

func TestGroupMembers(t *testing.T) {
	start := date(2025, time.September, 1)
	anchor := member(1, StatusPending, start)
	sibling := member(2, StatusApproved, start)
	foreign := member(3, StatusPending, date(2025, time.October, 1))

	members := GroupMembers(anchor, []*Reservation{anchor, sibling, foreign})

	require.Len(t, members, 2)
	require.Equal(t, int64(1), members[0].ID)
	require.Equal(t, int64(2), members[1].ID)
}
