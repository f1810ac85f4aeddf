package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vetsched/backend/internal/domain"
)

// ResourceFilter narrows an overlap query to appointments referencing the
// given vet and/or room. Empty fields are not matched.
type ResourceFilter struct {
	VetID  string
	RoomID string
}

func (f ResourceFilter) IsZero() bool {
	return f.VetID == "" && f.RoomID == ""
}

type ListParams struct {
	// Day, when set, restricts results to appointments starting on that
	// calendar day (UTC).
	Day      *time.Time
	Page     int
	PageSize int
}

type AppointmentRepository interface {
	Create(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Appointment, error)
	List(ctx context.Context, params ListParams) ([]domain.Appointment, int, error)
	Update(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) (domain.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// FindOverlapping returns the non-cancelled appointments whose half-open
	// interval overlaps [start, end) and which reference a resource in filter,
	// excluding excludeID when non-nil. Rows are ordered by start time
	// ascending.
	FindOverlapping(ctx context.Context, filter ResourceFilter, start, end time.Time, excludeID uuid.UUID) ([]domain.Appointment, error)
}
