package appointments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vetsched/backend/internal/domain"
	"vetsched/backend/internal/notify"
	"vetsched/backend/internal/store"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type Service struct {
	repo      store.AppointmentRepository
	resources store.ResourceRepository
	detector  *ConflictDetector
	notifier  notify.Dispatcher
	now       func() time.Time
}

func NewService(repo store.AppointmentRepository, resources store.ResourceRepository, notifier notify.Dispatcher) *Service {
	return &Service{
		repo:      repo,
		resources: resources,
		detector:  NewConflictDetector(repo),
		notifier:  notifier,
		now:       time.Now,
	}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Appointment, error) {
	draft, err := validateCreate(in, s.now().UTC())
	if err != nil {
		return domain.Appointment{}, err
	}

	if err := s.checkConflicts(ctx, draft, uuid.Nil); err != nil {
		return domain.Appointment{}, err
	}

	appt, err := s.repo.Create(ctx, draft)
	if err != nil {
		return domain.Appointment{}, err
	}

	s.dispatch(ctx, notify.Event{
		Kind:          notify.KindAppointmentCreated,
		AppointmentID: appt.ID,
		Message:       "Appointment scheduled for " + appt.PetName,
	})
	return appt, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	return s.repo.Get(ctx, id)
}

type ListQuery struct {
	Day      *time.Time
	Page     int
	PageSize int
}

type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalCount      int  `json:"totalCount"`
	PageSize        int  `json:"pageSize"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Appointment, Pagination, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	rows, total, err := s.repo.List(ctx, store.ListParams{
		Day:      q.Day,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, Pagination{}, err
	}

	totalPages := (total + pageSize - 1) / pageSize
	return rows, Pagination{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalCount:      total,
		PageSize:        pageSize,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (domain.Appointment, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Appointment{}, err
	}

	draft, err := validateUpdate(existing, in)
	if err != nil {
		return domain.Appointment{}, err
	}

	if err := s.checkConflicts(ctx, draft, id); err != nil {
		return domain.Appointment{}, err
	}

	appt, err := s.repo.Update(ctx, draft)
	if err != nil {
		return domain.Appointment{}, err
	}

	s.dispatch(ctx, notify.Event{
		Kind:          notify.KindAppointmentUpdated,
		AppointmentID: appt.ID,
		Message:       "Appointment updated for " + appt.PetName,
	})
	return appt, nil
}

// UpdateStatus toggles only the status field. Any of the three states may move
// to any other: clinic staff re-open completed or cancelled appointments.
// Cancelling frees the vet and room without touching the stored window.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (domain.Appointment, error) {
	st := domain.AppointmentStatus(status)
	if !st.Valid() {
		return domain.Appointment{}, &ValidationError{Fields: []FieldError{
			{Field: "status", Message: "Invalid status"},
		}}
	}

	appt, err := s.repo.UpdateStatus(ctx, id, st)
	if err != nil {
		return domain.Appointment{}, err
	}

	s.dispatch(ctx, notify.Event{
		Kind:          notify.KindAppointmentStatusChanged,
		AppointmentID: appt.ID,
		Message:       "Appointment for " + appt.PetName + " is now " + string(appt.Status),
	})
	return appt, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.dispatch(ctx, notify.Event{
		Kind:          notify.KindAppointmentDeleted,
		AppointmentID: id,
		Message:       "Appointment deleted",
	})
	return nil
}

func (s *Service) ListVets(ctx context.Context) ([]domain.Vet, error) {
	return s.resources.ListVets(ctx)
}

func (s *Service) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.resources.ListRooms(ctx)
}

// checkConflicts rejects the draft if it contends for a vet or room. A
// cancelled draft holds no resources and is never checked; its slot is free
// for others to book, so editing it must not trip on whoever took the slot.
func (s *Service) checkConflicts(ctx context.Context, draft domain.Appointment, excludeID uuid.UUID) error {
	if draft.Status == domain.AppointmentStatusCancelled {
		return nil
	}

	conflicts, err := s.detector.FindConflicts(ctx, Candidate{
		Start:     draft.StartAt,
		End:       draft.EndAt,
		VetID:     draft.VetID,
		RoomID:    draft.RoomID,
		ExcludeID: excludeID,
	})
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return s.conflictError(ctx, conflicts[0])
	}
	return nil
}

// conflictError shapes the earliest conflict into the caller-facing message,
// naming the contended vet and room when they can still be resolved. Lookup
// failures fall back to generic names rather than masking the conflict.
func (s *Service) conflictError(ctx context.Context, conflict domain.Appointment) error {
	cErr := &ConflictError{
		ConflictingID: conflict.ID,
		Start:         conflict.StartAt,
		End:           conflict.EndAt,
	}
	if conflict.VetID != "" {
		if vetID, err := uuid.Parse(conflict.VetID); err == nil {
			if vet, err := s.resources.GetVet(ctx, vetID); err == nil {
				cErr.VetName = vet.Name
			}
		}
	}
	if conflict.RoomID != "" {
		if roomID, err := uuid.Parse(conflict.RoomID); err == nil {
			if room, err := s.resources.GetRoom(ctx, roomID); err == nil {
				cErr.RoomName = room.Name
			}
		}
	}
	return cErr
}

func (s *Service) dispatch(ctx context.Context, ev notify.Event) {
	if s.notifier == nil {
		return
	}
	s.notifier.Dispatch(ctx, ev)
}
