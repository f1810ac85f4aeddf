// Package notify carries scheduling events to whoever wants to surface them.
// Consumers receive a Dispatcher explicitly; there is no shared registry.
package notify

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

const (
	KindAppointmentCreated       = "appointment.created"
	KindAppointmentUpdated       = "appointment.updated"
	KindAppointmentStatusChanged = "appointment.status_changed"
	KindAppointmentDeleted       = "appointment.deleted"
)

type Event struct {
	Kind          string
	AppointmentID uuid.UUID
	Message       string
}

type Dispatcher interface {
	Dispatch(ctx context.Context, ev Event)
}

// LogDispatcher writes events to the structured log. It stands in for a real
// delivery channel (email, push) without changing the Dispatcher seam.
type LogDispatcher struct {
	log *slog.Logger
}

func NewLogDispatcher(log *slog.Logger) *LogDispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &LogDispatcher{log: log.With(slog.String("component", "notify"))}
}

func (d *LogDispatcher) Dispatch(ctx context.Context, ev Event) {
	d.log.InfoContext(ctx, "notification",
		slog.String("kind", ev.Kind),
		slog.String("appointment_id", ev.AppointmentID.String()),
		slog.String("message", ev.Message),
	)
}
