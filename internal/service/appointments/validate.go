package appointments

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"vetsched/backend/internal/domain"
)

type CreateInput struct {
	PetName   string
	OwnerName string
	Type      string
	Status    string
	Notes     string
	Duration  int
	StartAt   string
	VetID     string
	RoomID    string
}

// UpdateInput carries a partial update; nil fields keep the stored value.
// An explicit empty VetID or RoomID unassigns the resource.
type UpdateInput struct {
	PetName   *string
	OwnerName *string
	Type      *string
	Status    *string
	Notes     *string
	Duration  *int
	StartAt   *string
	VetID     *string
	RoomID    *string
}

// validateCreate normalizes the raw input into an appointment draft or
// returns a ValidationError listing every violated rule. Temporal sanity
// (not in the past, at most one year out) applies to creation only and is
// judged against now, the wall clock at request time.
func validateCreate(in CreateInput, now time.Time) (domain.Appointment, error) {
	var fields []FieldError

	draft := domain.Appointment{
		PetName:   strings.TrimSpace(in.PetName),
		OwnerName: strings.TrimSpace(in.OwnerName),
		Type:      domain.AppointmentType(strings.TrimSpace(in.Type)),
		Notes:     strings.TrimSpace(in.Notes),
		Duration:  in.Duration,
		VetID:     strings.TrimSpace(in.VetID),
		RoomID:    strings.TrimSpace(in.RoomID),
	}

	status := domain.AppointmentStatus(strings.TrimSpace(in.Status))
	if status == "" {
		status = domain.AppointmentStatusPending
	}
	if !status.Valid() {
		fields = append(fields, FieldError{Field: "status", Message: "Invalid status"})
	}
	draft.Status = status

	fields = append(fields, validateCommon(&draft)...)

	startAt, startErrs := parseStartAt(in.StartAt)
	fields = append(fields, startErrs...)
	if len(startErrs) == 0 {
		if startAt.Before(now) {
			fields = append(fields, FieldError{
				Field:   "startAt",
				Message: "Cannot schedule appointments in the past. Please select a future date and time.",
			})
		}
		if startAt.After(now.AddDate(1, 0, 0)) {
			fields = append(fields, FieldError{
				Field:   "startAt",
				Message: "Cannot schedule appointments more than 1 year in advance.",
			})
		}
		draft.StartAt = startAt
		draft.EndAt = startAt.Add(time.Duration(draft.Duration) * time.Minute)
	}

	if len(fields) > 0 {
		return domain.Appointment{}, &ValidationError{Fields: fields}
	}
	return draft, nil
}

// validateUpdate merges the partial input over the stored appointment and
// re-validates the result. The not-in-the-past rule is deliberately absent:
// staff routinely correct records of appointments that already happened.
func validateUpdate(existing domain.Appointment, in UpdateInput) (domain.Appointment, error) {
	var fields []FieldError

	draft := existing
	if in.PetName != nil {
		draft.PetName = strings.TrimSpace(*in.PetName)
	}
	if in.OwnerName != nil {
		draft.OwnerName = strings.TrimSpace(*in.OwnerName)
	}
	if in.Type != nil {
		draft.Type = domain.AppointmentType(strings.TrimSpace(*in.Type))
	}
	if in.Status != nil {
		status := domain.AppointmentStatus(strings.TrimSpace(*in.Status))
		if !status.Valid() {
			fields = append(fields, FieldError{Field: "status", Message: "Invalid status"})
		}
		draft.Status = status
	}
	if in.Notes != nil {
		draft.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.Duration != nil {
		draft.Duration = *in.Duration
	}
	if in.VetID != nil {
		draft.VetID = strings.TrimSpace(*in.VetID)
	}
	if in.RoomID != nil {
		draft.RoomID = strings.TrimSpace(*in.RoomID)
	}

	fields = append(fields, validateCommon(&draft)...)

	if in.StartAt != nil {
		startAt, startErrs := parseStartAt(*in.StartAt)
		fields = append(fields, startErrs...)
		if len(startErrs) == 0 {
			draft.StartAt = startAt
		}
	}
	// EndAt is always derived, never accepted from the client.
	draft.EndAt = draft.StartAt.Add(time.Duration(draft.Duration) * time.Minute)

	if len(fields) > 0 {
		return domain.Appointment{}, &ValidationError{Fields: fields}
	}
	return draft, nil
}

func validateCommon(draft *domain.Appointment) []FieldError {
	var fields []FieldError

	if draft.PetName == "" {
		fields = append(fields, FieldError{Field: "petName", Message: "Pet name is required"})
	}
	if draft.OwnerName == "" {
		fields = append(fields, FieldError{Field: "ownerName", Message: "Owner name is required"})
	}
	if !draft.Type.Valid() {
		fields = append(fields, FieldError{Field: "type", Message: "Please select type"})
	}
	if draft.Duration < domain.MinDurationMinutes {
		fields = append(fields, FieldError{Field: "duration", Message: "Duration must be at least 15 minutes"})
	}
	if draft.Duration > domain.MaxDurationMinutes {
		fields = append(fields, FieldError{Field: "duration", Message: "Duration cannot exceed 8 hours"})
	}
	if draft.VetID != "" {
		if _, err := uuid.Parse(draft.VetID); err != nil {
			fields = append(fields, FieldError{Field: "vetId", Message: "Invalid vet reference"})
		}
	}
	if draft.RoomID != "" {
		if _, err := uuid.Parse(draft.RoomID); err != nil {
			fields = append(fields, FieldError{Field: "roomId", Message: "Invalid room reference"})
		}
	}

	return fields
}

func parseStartAt(raw string) (time.Time, []FieldError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, []FieldError{{Field: "startAt", Message: "Start time is required"}}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, []FieldError{{Field: "startAt", Message: "Invalid start time"}}
	}
	return t.UTC(), nil
}
