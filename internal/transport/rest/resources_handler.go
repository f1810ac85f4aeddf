package rest

import (
	"log/slog"
	"net/http"
)

func (h *Handler) listVets(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("route", "ListVets"))

	vets, err := h.svc.ListVets(r.Context())
	if err != nil {
		log.Error("vets list failed", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch veterinarians")
		return
	}
	writeData(w, http.StatusOK, vets)
}

func (h *Handler) listRooms(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(slog.String("route", "ListRooms"))

	rooms, err := h.svc.ListRooms(r.Context())
	if err != nil {
		log.Error("rooms list failed", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch rooms")
		return
	}
	writeData(w, http.StatusOK, rooms)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: map[string]string{"status": "ok"}})
}
