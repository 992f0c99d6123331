// Package httpapi exposes reconciliation runs and source listings over HTTP.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"flightlog-reconciler/internal/domain/entity"
	"flightlog-reconciler/pkg/logger"
	"flightlog-reconciler/pkg/report"
)

// Service is the reconciliation use case behind the handlers
type Service interface {
	Today() string
	Reconcile(ctx context.Context, date string) (*entity.Reconciliation, error)
	Flights(ctx context.Context, source entity.Source, date string) ([]entity.FlightRecord, error)
	LatestReconciliation(ctx context.Context, date string) (*entity.Reconciliation, error)
}

// Handler serves the reconciliation endpoints
type Handler struct {
	service Service
	logger  logger.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(service Service, logger logger.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the endpoints on mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /reconcile", h.reconcile)
	mux.HandleFunc("GET /flights", h.flights)
	mux.HandleFunc("GET /report", h.report)
	mux.HandleFunc("GET /reconciliations/latest", h.latest)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Healthy"))
}

func (h *Handler) date(r *http.Request) string {
	if d := r.URL.Query().Get("date"); d != "" {
		return d
	}
	return h.service.Today()
}

func (h *Handler) reconcile(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Reconcile(r.Context(), h.date(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) flights(w http.ResponseWriter, r *http.Request) {
	source, ok := entity.ParseSource(r.URL.Query().Get("source"))
	if !ok {
		h.writeError(w, entity.ErrUnknownSource)
		return
	}
	flights, err := h.service.Flights(r.Context(), source, h.date(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, flights)
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Reconcile(r.Context(), h.date(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteReconciliation(&buf, rec); err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) latest(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.LatestReconciliation(r.Context(), h.date(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	var fetchErr *entity.FetchError
	switch {
	case errors.Is(err, entity.ErrInvalidDate), errors.Is(err, entity.ErrUnknownSource):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrNoFlightData), errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", "status", status, "error", err)
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}
