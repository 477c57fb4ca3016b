package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/EpicMandM/hotel-frontdesk/internal/desk"
	"github.com/EpicMandM/hotel-frontdesk/internal/frontdesk"
	"github.com/EpicMandM/hotel-frontdesk/internal/logger"
	"github.com/EpicMandM/hotel-frontdesk/internal/models"
	"github.com/EpicMandM/hotel-frontdesk/internal/service"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// APIHandler exposes the computed desk views as read-only JSON.
type APIHandler struct {
	desk   *desk.Desk
	logger *logger.Logger
}

func NewAPIHandler(d *desk.Desk, log *logger.Logger) *APIHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &APIHandler{
		desk:   d,
		logger: log,
	}
}

// Routes registers the gateway endpoints.
func (h *APIHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/rooms/summary", h.RoomSummary)
	mux.HandleFunc("GET /api/invoices/preview", h.InvoicePreview)
	mux.HandleFunc("GET /api/reservations/search", h.SearchReservations)
	mux.HandleFunc("GET /api/guests/search", h.SearchGuests)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return h.withRequestID(mux)
}

func (h *APIHandler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		h.logger.Debug("Gateway request", logger.Method(r.Method), logger.Path(r.URL.Path), logger.RequestID(id))
		next.ServeHTTP(w, r)
	})
}

type roomSummaryResponse struct {
	Summary frontdesk.Summary    `json:"summary"`
	Filter  frontdesk.Filter     `json:"filter"`
	Rooms   []frontdesk.RoomView `json:"rooms"`
}

// RoomSummary handles GET /api/rooms/summary[?estado=]
func (h *APIHandler) RoomSummary(w http.ResponseWriter, r *http.Request) {
	page := h.desk.NewRoomsPage()
	if err := page.Load(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	if status := strings.TrimSpace(r.URL.Query().Get("estado")); status != "" {
		page.Toggle(frontdesk.NormalizeStatus(strings.ToUpper(status)))
	}

	h.writeJSON(w, http.StatusOK, roomSummaryResponse{
		Summary: page.Summary(),
		Filter:  page.Filter,
		Rooms:   page.Visible(),
	})
}

// InvoicePreview handles GET /api/invoices/preview?dni=
func (h *APIHandler) InvoicePreview(w http.ResponseWriter, r *http.Request) {
	page := h.desk.NewInvoicePage()
	if err := page.Search(r.Context(), r.URL.Query().Get("dni")); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page.Preview())
}

type reservationSearchResponse struct {
	Query string                `json:"query"`
	Mode  string                `json:"mode"`
	Rows  []desk.ReservationRow `json:"rows"`
}

// SearchReservations handles GET /api/reservations/search?q=
func (h *APIHandler) SearchReservations(w http.ResponseWriter, r *http.Request) {
	mode, query, ok := frontdesk.ClassifyInput(r.URL.Query().Get("q"))
	if !ok {
		h.writeError(w, r, fmt.Errorf("%w: q is required", models.ErrValidation))
		return
	}

	page := h.desk.NewCancelPage()
	page.Type(query)
	if err := page.Search(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, reservationSearchResponse{
		Query: query,
		Mode:  mode.String(),
		Rows:  page.Visible(),
	})
}

type guestSearchResponse struct {
	Criterion models.GuestCriterion `json:"criterion"`
	Query     string                `json:"query"`
	Results   []models.Guest        `json:"results"`
}

// SearchGuests handles GET /api/guests/search?q=[&by=nombre|apellido|dni]
func (h *APIHandler) SearchGuests(w http.ResponseWriter, r *http.Request) {
	by := r.URL.Query().Get("by")
	if by == "" {
		by = string(models.CriterionName)
	}
	criterion, err := models.ParseGuestCriterion(by)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		h.writeError(w, r, fmt.Errorf("%w: q is required", models.ErrValidation))
		return
	}

	results, err := h.desk.NewGuestSearchPage().Search(r.Context(), criterion, query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, guestSearchResponse{
		Criterion: criterion,
		Query:     query,
		Results:   results,
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

// StatusFor maps a desk error to the gateway's HTTP status.
func StatusFor(err error) int {
	var apiErr *service.APIError
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, desk.ErrBusy):
		return http.StatusConflict
	case errors.As(err, &apiErr):
		return apiErr.Status
	default:
		return http.StatusBadGateway
	}
}

func (h *APIHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	h.logger.Warn("Gateway request failed",
		logger.Method(r.Method),
		logger.Path(r.URL.Path),
		logger.HTTPStatus(status),
		logger.Error(err))
	h.writeJSON(w, status, errorResponse{Error: desk.Describe(err)})
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", logger.Error(err))
	}
}
