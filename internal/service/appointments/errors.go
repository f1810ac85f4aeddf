package appointments

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every failed rule for a request rather than
// stopping at the first, so a form can show all problems at once.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid appointment data provided"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return strings.Join(parts, "; ")
}

const (
	fallbackVetName  = "The selected vet"
	fallbackRoomName = "the selected room"
)

// ConflictError names the contended resources and the window of the earliest
// conflicting appointment.
type ConflictError struct {
	ConflictingID uuid.UUID
	VetName       string
	RoomName      string
	Start         time.Time
	End           time.Time
}

func (e *ConflictError) Error() string {
	vet := e.VetName
	if vet == "" {
		vet = fallbackVetName
	}
	room := e.RoomName
	if room == "" {
		room = fallbackRoomName
	}
	return fmt.Sprintf("Scheduling conflict detected. %s or %s is already booked from %s to %s.",
		vet, room, e.Start.UTC().Format("15:04"), e.End.UTC().Format("15:04"))
}
