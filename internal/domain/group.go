package domain

import (
	"sort"
	"time"
)

// GroupAggregateStatus is the derived status of a reservation group
type GroupAggregateStatus string

const (
	GroupPending  GroupAggregateStatus = "Pending"
	GroupApproved GroupAggregateStatus = "Approved"
	GroupMixed    GroupAggregateStatus = "Mixed"
)

// GroupKey identifies a reservation group: sibling instances created by the
// same recurring request share all six fields
type GroupKey struct {
	UserID      int64
	ClassroomID int64
	TermID      int64 // 0 when the instance has no term
	Weekday     int
	RangeStart  time.Time
	RangeEnd    time.Time
}

// GroupKeyOf returns the grouping key of an instance
func GroupKeyOf(r *Reservation) GroupKey {
	key := GroupKey{
		UserID:      r.UserID,
		ClassroomID: r.ClassroomID,
		Weekday:     r.Weekday,
		RangeStart:  r.RangeStart,
		RangeEnd:    r.RangeEnd,
	}
	if r.TermID != nil {
		key.TermID = *r.TermID
	}
	return key
}

// ReservationGroup is the derived set of sibling instances sharing
// recurrence parameters. Groups are a view computed on read; they are
// never persisted and have no independent lifecycle. The anchor is the
// minimum instance id within the set
type ReservationGroup struct {
	AnchorID    int64
	UserID      int64
	ClassroomID int64
	TermID      *int64
	Weekday     int
	RangeStart  time.Time
	RangeEnd    time.Time
	Count       int
	Status      GroupAggregateStatus
}

// BuildGroups clusters instances by group key and derives each group's
// aggregate status. Output is ordered by RangeStart descending, then by
// anchor id for determinism
func BuildGroups(instances []*Reservation) []ReservationGroup {
	byKey := make(map[GroupKey][]*Reservation)
	for _, r := range instances {
		key := GroupKeyOf(r)
		byKey[key] = append(byKey[key], r)
	}

	groups := make([]ReservationGroup, 0, len(byKey))
	for _, members := range byKey {
		anchor := members[0]
		for _, m := range members {
			if m.ID < anchor.ID {
				anchor = m
			}
		}
		groups = append(groups, ReservationGroup{
			AnchorID:    anchor.ID,
			UserID:      anchor.UserID,
			ClassroomID: anchor.ClassroomID,
			TermID:      anchor.TermID,
			Weekday:     anchor.Weekday,
			RangeStart:  anchor.RangeStart,
			RangeEnd:    anchor.RangeEnd,
			Count:       len(members),
			Status:      AggregateStatus(members),
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if !groups[i].RangeStart.Equal(groups[j].RangeStart) {
			return groups[i].RangeStart.After(groups[j].RangeStart)
		}
		return groups[i].AnchorID < groups[j].AnchorID
	})

	return groups
}

// GroupMembers re-derives the full member set of the anchor's group by
// filtering allInstances on the same group key. Batch operations locate
// all siblings from just the anchor id this way
func GroupMembers(anchor *Reservation, allInstances []*Reservation) []*Reservation {
	key := GroupKeyOf(anchor)
	members := make([]*Reservation, 0)
	for _, r := range allInstances {
		if GroupKeyOf(r) == key {
			members = append(members, r)
		}
	}
	return members
}

// AggregateStatus derives a group's status from its members:
// Pending if any member is pending, Approved iff all members are approved,
// otherwise Mixed. Recomputed on every read, never cached
func AggregateStatus(members []*Reservation) GroupAggregateStatus {
	if len(members) == 0 {
		return GroupMixed
	}

	anyPending := false
	allApproved := true
	for _, m := range members {
		if m.IsPending() {
			anyPending = true
		}
		if !m.IsApproved() {
			allApproved = false
		}
	}

	if anyPending {
		return GroupPending
	}
	if allApproved {
		return GroupApproved
	}
	return GroupMixed
}
