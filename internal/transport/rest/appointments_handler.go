package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"vetsched/backend/internal/domain"
	"vetsched/backend/internal/service/appointments"
)

type appointmentsService interface {
	Create(ctx context.Context, in appointments.CreateInput) (domain.Appointment, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Appointment, error)
	List(ctx context.Context, q appointments.ListQuery) ([]domain.Appointment, appointments.Pagination, error)
	Update(ctx context.Context, id uuid.UUID, in appointments.UpdateInput) (domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (domain.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListVets(ctx context.Context) ([]domain.Vet, error)
	ListRooms(ctx context.Context) ([]domain.Room, error)
}

type Handler struct {
	svc appointmentsService
	log *slog.Logger
}

func NewHandler(svc appointmentsService, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		svc: svc,
		log: log.With(slog.String("component", "rest.appointments")),
	}
}

type createAppointmentRequest struct {
	PetName   string `json:"petName"`
	OwnerName string `json:"ownerName"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
	Duration  int    `json:"duration"`
	StartAt   string `json:"startAt"`
	VetID     string `json:"vetId"`
	RoomID    string `json:"roomId"`
}

func (h *Handler) createAppointment(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("route", "CreateAppointment"))

	var req createAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_json"))
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appt, err := h.svc.Create(r.Context(), appointments.CreateInput{
		PetName:   req.PetName,
		OwnerName: req.OwnerName,
		Type:      req.Type,
		Status:    req.Status,
		Notes:     req.Notes,
		Duration:  req.Duration,
		StartAt:   req.StartAt,
		VetID:     req.VetID,
		RoomID:    req.RoomID,
	})
	if err != nil {
		writeServiceError(log, w, err)
		return
	}

	log.Info("appointment created",
		slog.String("appointment_id", appt.ID.String()),
		slog.Time("start_at", appt.StartAt),
		slog.Time("end_at", appt.EndAt),
	)
	writeData(w, http.StatusCreated, appt)
}

func (h *Handler) listAppointments(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("route", "ListAppointments"))

	q := appointments.ListQuery{}
	params := r.URL.Query()
	if raw := params.Get("date"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			log.Warn("invalid request", slog.String("reason", "bad_date"), slog.String("date", raw))
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		q.Day = &day
	}
	if raw := params.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			q.Page = page
		}
	}
	if raw := params.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			q.PageSize = limit
		}
	}

	rows, pagination, err := h.svc.List(r.Context(), q)
	if err != nil {
		writeServiceError(log, w, err)
		return
	}

	log.Debug("appointments listed", slog.Int("count", len(rows)), slog.Int("total", pagination.TotalCount))
	writeJSON(w, http.StatusOK, apiResponse{
		Success:    true,
		Data:       rows,
		Pagination: &pagination,
	})
}

func (h *Handler) getAppointment(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("route", "GetAppointment"))

	id, ok := h.appointmentID(log, w, r)
	if !ok {
		return
	}

	appt, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(log, w, err)
		return
	}
	writeData(w, http.StatusOK, appt)
}

type updateAppointmentRequest struct {
	PetName   *string `json:"petName"`
	OwnerName *string `json:"ownerName"`
	Type      *string `json:"type"`
	Status    *string `json:"status"`
	Notes     *string `json:"notes"`
	Duration  *int    `json:"duration"`
	StartAt   *string `json:"startAt"`
	VetID     *string `json:"vetId"`
	RoomID    *string `json:"roomId"`
}

// statusOnly reports whether the request toggles status and nothing else,
// which skips full validation and conflict checking.
func (req updateAppointmentRequest) statusOnly() bool {
	return req.Status != nil &&
		req.PetName == nil && req.OwnerName == nil && req.Type == nil &&
		req.Notes == nil && req.Duration == nil && req.StartAt == nil &&
		req.VetID == nil && req.RoomID == nil
}

func (h *Handler) updateAppointment(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("route", "UpdateAppointment"))

	id, ok := h.appointmentID(log, w, r)
	if !ok {
		return
	}

	var req updateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_json"), slog.String("appointment_id", id.String()))
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var appt domain.Appointment
	var err error
	if req.statusOnly() {
		appt, err = h.svc.UpdateStatus(r.Context(), id, *req.Status)
	} else {
		appt, err = h.svc.Update(r.Context(), id, appointments.UpdateInput{
			PetName:   req.PetName,
			OwnerName: req.OwnerName,
			Type:      req.Type,
			Status:    req.Status,
			Notes:     req.Notes,
			Duration:  req.Duration,
			StartAt:   req.StartAt,
			VetID:     req.VetID,
			RoomID:    req.RoomID,
		})
	}
	if err != nil {
		writeServiceError(log, w, err)
		return
	}

	log.Info("appointment updated",
		slog.String("appointment_id", appt.ID.String()),
		slog.String("status", string(appt.Status)),
	)
	writeData(w, http.StatusOK, appt)
}

func (h *Handler) deleteAppointment(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("route", "DeleteAppointment"))

	id, ok := h.appointmentID(log, w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(log, w, err)
		return
	}

	log.Info("appointment deleted", slog.String("appointment_id", id.String()))
	writeJSON(w, http.StatusOK, apiResponse{Success: true})
}

func (h *Handler) appointmentID(log *slog.Logger, w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "invalid_uuid"), slog.String("id", raw))
		writeError(w, http.StatusBadRequest, "appointment id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}
