package rest

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the API routes. The rate limiter is optional; cross-cutting
// middleware (CORS, recovery) is layered on by the caller.
func NewRouter(h *Handler, rl *RateLimiter) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	if rl != nil {
		api.Use(rl.Middleware)
	}

	api.HandleFunc("/appointments", h.listAppointments).Methods(http.MethodGet)
	api.HandleFunc("/appointments", h.createAppointment).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{id}", h.getAppointment).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}", h.updateAppointment).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{id}", h.deleteAppointment).Methods(http.MethodDelete)
	api.HandleFunc("/vets", h.listVets).Methods(http.MethodGet)
	api.HandleFunc("/rooms", h.listRooms).Methods(http.MethodGet)

	return r
}
