package domain

import "time"

// Two conflict predicates are used in different contexts and must stay
// separate: approval-time validation checks only against approved siblings
// (the final authority before committing a slot), while request-time
// admission checks against any non-rejected sibling so a new request does
// not collide with another still-pending one.
//
// Both predicates exclude the candidate itself by explicit id comparison,
// never by reference identity.

// Overlaps reports whether the half-open intervals [a.Start, a.End) and
// [b.Start, b.End) overlap. Strict inequalities: touching endpoints
// (one ends exactly where the other starts) never overlap
func Overlaps(a, b *Reservation) bool {
	return b.StartTime.Before(a.EndTime) && b.EndTime.After(a.StartTime)
}

// HasApprovedConflict is the approval-time predicate: the candidate
// conflicts iff an approved sibling in the same slot scope overlaps it
func HasApprovedConflict(candidate *Reservation, existing []*Reservation) bool {
	for _, ex := range existing {
		if ex.ID == candidate.ID {
			continue
		}
		if !ex.IsApproved() {
			continue
		}
		if !candidate.SameSlotScope(ex) {
			continue
		}
		if Overlaps(candidate, ex) {
			return true
		}
	}
	return false
}

// HasLiveConflict is the request-time predicate: the candidate conflicts
// iff any non-rejected sibling in the same slot scope overlaps it.
// Conservative on purpose - colliding with a pending request is still a
// collision from the requester's point of view
func HasLiveConflict(candidate *Reservation, existing []*Reservation) bool {
	return len(FindLiveConflicts(candidate, existing)) > 0
}

// FindLiveConflicts returns every non-rejected sibling overlapping the
// candidate, for composing user-facing skip reasons
func FindLiveConflicts(candidate *Reservation, existing []*Reservation) []*Reservation {
	conflicts := make([]*Reservation, 0)
	for _, ex := range existing {
		if ex.ID == candidate.ID {
			continue
		}
		if ex.IsRejected() {
			continue
		}
		if !candidate.SameSlotScope(ex) {
			continue
		}
		if Overlaps(candidate, ex) {
			conflicts = append(conflicts, ex)
		}
	}
	return conflicts
}

// ConflictPair is one overlapping pair of live reservations, with the
// overlap window, for the admin conflict report
type ConflictPair struct {
	Reservation  *Reservation
	Conflicting  *Reservation
	OverlapStart time.Time
	OverlapEnd   time.Time
}

// FindConflictPairs scans all non-rejected instances pairwise and returns
// every overlapping pair within the same slot scope
func FindConflictPairs(instances []*Reservation) []ConflictPair {
	pairs := make([]ConflictPair, 0)

	live := make([]*Reservation, 0, len(instances))
	for _, r := range instances {
		if !r.IsRejected() {
			live = append(live, r)
		}
	}

	for i := 0; i < len(live); i++ {
		for j := i + 1; j < len(live); j++ {
			r1, r2 := live[i], live[j]
			if r1.ID == r2.ID || !r1.SameSlotScope(r2) || !Overlaps(r1, r2) {
				continue
			}
			overlapStart := r1.StartTime
			if r2.StartTime.After(overlapStart) {
				overlapStart = r2.StartTime
			}
			overlapEnd := r1.EndTime
			if r2.EndTime.Before(overlapEnd) {
				overlapEnd = r2.EndTime
			}
			pairs = append(pairs, ConflictPair{
				Reservation:  r1,
				Conflicting:  r2,
				OverlapStart: overlapStart,
				OverlapEnd:   overlapEnd,
			})
		}
	}

	return pairs
}
