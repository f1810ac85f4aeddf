package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"vetsched/backend/internal/service/appointments"
	"vetsched/backend/internal/store"
)

type apiResponse struct {
	Success    bool                     `json:"success"`
	Data       any                      `json:"data,omitempty"`
	Pagination *appointments.Pagination `json:"pagination,omitempty"`
	Error      string                   `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, apiResponse{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiResponse{Success: false, Error: msg})
}

// writeServiceError maps core errors onto the wire without reinterpreting
// them: validation and conflict errors keep their message, storage failures
// surface as a generic 500 and are logged with detail.
func writeServiceError(log *slog.Logger, w http.ResponseWriter, err error) {
	var vErr *appointments.ValidationError
	if errors.As(err, &vErr) {
		log.Warn("invalid request", slog.Any("err", err))
		writeError(w, http.StatusBadRequest, vErr.Error())
		return
	}

	var cErr *appointments.ConflictError
	if errors.As(err, &cErr) {
		log.Info("scheduling conflict",
			slog.String("conflicting_id", cErr.ConflictingID.String()),
			slog.Time("conflict_start", cErr.Start),
			slog.Time("conflict_end", cErr.End),
		)
		writeError(w, http.StatusConflict, cErr.Error())
		return
	}

	switch {
	case errors.Is(err, store.ErrConflict):
		// Lost the race to a concurrent writer; the conflicting row is not
		// visible, so no names or times to report.
		log.Info("write lost overlap race")
		writeError(w, http.StatusConflict, "That time slot was just booked. Pick a different slot.")
	case errors.Is(err, store.ErrInvalidReference):
		log.Warn("unknown resource reference", slog.Any("err", err))
		writeError(w, http.StatusBadRequest, "Unknown vet or room reference")
	case errors.Is(err, store.ErrNotFound):
		log.Info("appointment not found")
		writeError(w, http.StatusNotFound, "Appointment not found")
	default:
		log.Error("request failed", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
