package desk

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/EpicMandM/hotel-frontdesk/internal/frontdesk"
	"github.com/EpicMandM/hotel-frontdesk/internal/logger"
	"github.com/EpicMandM/hotel-frontdesk/internal/models"
	"github.com/samber/lo"
)

// ReservationRow is one reservation as listed on the cancellation page.
type ReservationRow struct {
	ID       int64  `json:"id"`
	Holder   string `json:"holder"`
	Room     string `json:"room"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

// NewReservationRow flattens a reservation for display.
func NewReservationRow(r models.Reservation) ReservationRow {
	return ReservationRow{
		ID:       r.ID,
		Holder:   r.ResponsibleGuest().FullName(),
		Room:     r.Room.NumberOr("-"),
		CheckIn:  models.FormatDate(r.CheckIn),
		CheckOut: models.FormatDate(r.CheckOut),
	}
}

// CancelPage searches reservations by holder name or document and cancels them.
type CancelPage struct {
	Matcher    frontdesk.Matcher `json:"matcher"`
	Rows       []ReservationRow  `json:"rows"`
	Error      string            `json:"error,omitempty"`
	Busy       bool              `json:"busy"`
	Cancelling int64             `json:"cancelling,omitempty"`

	mu   sync.Mutex
	desk *Desk
}

// Type records the text in the search box without searching.
func (p *CancelPage) Type(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Matcher.Type(text)
}

// Search runs the typed query. Blank input clears the page without calling
// the backend. A failed search clears previous results.
func (p *CancelPage) Search(ctx context.Context) error {
	log := p.desk.log()

	p.mu.Lock()
	mode, query, ok := frontdesk.ClassifyInput(p.Matcher.Current)
	if !ok {
		p.Rows = nil
		p.Error = ""
		p.Busy = false
		p.Matcher.Reset()
		p.mu.Unlock()
		return nil
	}
	ticket := p.Matcher.Begin(query)
	p.Busy = true
	p.Error = ""
	p.mu.Unlock()

	log.Info("Searching reservations", logger.Action("cancel_search"), logger.Query(query), logger.Mode(mode.String()))

	var (
		found []models.Reservation
		err   error
	)
	if mode == frontdesk.LookupByDocument {
		found, err = p.desk.Reservations.SearchReservationsByDocument(ctx, query)
	} else {
		found, err = p.desk.Reservations.SearchReservationsByName(ctx, query)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.Matcher.Accept(ticket) {
		log.Debug("Discarding superseded search", logger.Action("cancel_search"), logger.Query(query))
		return nil
	}
	p.Busy = false

	if err != nil {
		p.Rows = nil
		p.Error = Describe(err)
		log.Error("Reservation search failed", logger.Action("cancel_search"), logger.Query(query), logger.Error(err))
		return fmt.Errorf("failed to search reservations: %w", err)
	}

	p.Rows = lo.Map(found, func(r models.Reservation, _ int) ReservationRow { return NewReservationRow(r) })
	log.Info("Reservations found", logger.Action("cancel_search"), logger.Query(query), logger.Count(len(p.Rows)))
	return nil
}

// Visible returns the rows that may be shown for the current search text.
// Results of a query the user has since edited are hidden.
func (p *CancelPage) Visible() []ReservationRow {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.Matcher.Eligible() {
		return []ReservationRow{}
	}
	return append([]ReservationRow{}, p.Rows...)
}

// Cancel deletes the reservation with the given id and refreshes the search.
func (p *CancelPage) Cancel(ctx context.Context, rawID string) error {
	log := p.desk.log()

	trimmed := strings.TrimSpace(rawID)
	if trimmed == "" {
		return fmt.Errorf("%w: reservation id is required", models.ErrValidation)
	}
	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("%w: invalid reservation id %q", models.ErrValidation, trimmed)
	}

	p.mu.Lock()
	if p.Cancelling != 0 {
		p.mu.Unlock()
		return ErrBusy
	}
	p.Cancelling = id
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.Cancelling = 0
		p.mu.Unlock()
	}()

	log.Info("Cancelling reservation", logger.Action("cancel"), logger.Reservation(id))
	if err := p.desk.Reservations.CancelReservation(ctx, id); err != nil {
		log.Error("Failed to cancel reservation", logger.Action("cancel"), logger.Reservation(id), logger.Error(err))
		return fmt.Errorf("failed to cancel reservation %d: %w", id, err)
	}
	log.Info("Reservation cancelled", logger.Action("cancel"), logger.Reservation(id), logger.Status("cancelled"))

	if err := p.Search(ctx); err != nil {
		log.Warn("Refresh after cancel failed", logger.Action("cancel"), logger.Error(err))
	}
	return nil
}
