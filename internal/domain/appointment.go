package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type AppointmentType string

const (
	AppointmentTypeVaccination AppointmentType = "vaccination"
	AppointmentTypeCheckup     AppointmentType = "checkup"
	AppointmentTypeSurgery     AppointmentType = "surgery"
	AppointmentTypeEmergency   AppointmentType = "emergency"
	AppointmentTypeGrooming    AppointmentType = "grooming"
	AppointmentTypeDental      AppointmentType = "dental"
)

func (t AppointmentType) Valid() bool {
	switch t {
	case AppointmentTypeVaccination, AppointmentTypeCheckup, AppointmentTypeSurgery,
		AppointmentTypeEmergency, AppointmentTypeGrooming, AppointmentTypeDental:
		return true
	}
	return false
}

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Duration bounds in minutes.
const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 480
)

type Appointment struct {
	bun.BaseModel `bun:"table:appointments"`

	ID        uuid.UUID         `bun:"id,pk,type:uuid" json:"id"`
	PetName   string            `bun:"pet_name,notnull" json:"petName"`
	OwnerName string            `bun:"owner_name,notnull" json:"ownerName"`
	Type      AppointmentType   `bun:"type,notnull" json:"type"`
	Status    AppointmentStatus `bun:"status,notnull" json:"status"`
	Notes     string            `bun:"notes" json:"notes,omitempty"`
	Duration  int               `bun:"duration,notnull" json:"duration"`
	StartAt   time.Time         `bun:"start_at,notnull" json:"startAt"`
	EndAt     time.Time         `bun:"end_at,notnull" json:"endAt"`
	VetID     string            `bun:"vet_id,nullzero,type:uuid" json:"vetId,omitempty"`
	RoomID    string            `bun:"room_id,nullzero,type:uuid" json:"roomId,omitempty"`
	CreatedAt time.Time         `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt time.Time         `bun:"updated_at,notnull" json:"updatedAt"`
}

func (a *Appointment) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if a.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			a.ID = id
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		if a.UpdatedAt.IsZero() {
			a.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		a.UpdatedAt = now
	}
	return nil
}

// Interval returns the appointment's booked window.
func (a Appointment) Interval() Interval {
	return Interval{Start: a.StartAt, End: a.EndAt}
}

// SharesResource reports whether the appointment references the given vet or
// room. Empty ids never match: an unassigned slot contends with nothing.
func (a Appointment) SharesResource(vetID, roomID string) bool {
	if vetID != "" && a.VetID == vetID {
		return true
	}
	if roomID != "" && a.RoomID == roomID {
		return true
	}
	return false
}
