package appointments

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"vetsched/backend/internal/domain"
	"vetsched/backend/internal/store"
)

// Candidate is a proposed booking window and its resource assignment.
// ExcludeID, when set, removes the appointment being updated from conflict
// consideration so it never conflicts with itself.
type Candidate struct {
	Start     time.Time
	End       time.Time
	VetID     string
	RoomID    string
	ExcludeID uuid.UUID
}

// ConflictDetector decides whether a candidate window can be booked. It holds
// no state and performs no writes; it only reads a snapshot of overlapping
// appointments and applies the half-open interval test to it.
type ConflictDetector struct {
	repo store.AppointmentRepository
}

func NewConflictDetector(repo store.AppointmentRepository) *ConflictDetector {
	return &ConflictDetector{repo: repo}
}

// FindConflicts returns every existing non-cancelled appointment that shares a
// vet or room with the candidate and overlaps its window, earliest first. A
// candidate with no vet and no room cannot conflict and skips the storage
// query entirely.
func (d *ConflictDetector) FindConflicts(ctx context.Context, c Candidate) ([]domain.Appointment, error) {
	if c.VetID == "" && c.RoomID == "" {
		return nil, nil
	}

	snapshot, err := d.repo.FindOverlapping(ctx,
		store.ResourceFilter{VetID: c.VetID, RoomID: c.RoomID},
		c.Start, c.End, c.ExcludeID)
	if err != nil {
		return nil, err
	}

	// The storage query filters coarsely; the predicate applied here is the
	// one that decides.
	window := domain.Interval{Start: c.Start, End: c.End}
	conflicts := make([]domain.Appointment, 0, len(snapshot))
	for _, appt := range snapshot {
		if appt.Status == domain.AppointmentStatusCancelled {
			continue
		}
		if c.ExcludeID != uuid.Nil && appt.ID == c.ExcludeID {
			continue
		}
		if !appt.SharesResource(c.VetID, c.RoomID) {
			continue
		}
		if !window.Overlaps(appt.Interval()) {
			continue
		}
		conflicts = append(conflicts, appt)
	}

	sort.SliceStable(conflicts, func(i, j int) bool {
		return conflicts[i].StartAt.Before(conflicts[j].StartAt)
	})
	return conflicts, nil
}
