package desk

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/EpicMandM/hotel-frontdesk/internal/logger"
	"github.com/EpicMandM/hotel-frontdesk/internal/models"
)

// ReservationForm holds the fields typed on the reservation page.
type ReservationForm struct {
	Room     string `json:"room"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Document string `json:"document"`
}

// Request converts the form into a create request.
func (f ReservationForm) Request() models.CreateReservationRequest {
	return models.CreateReservationRequest{
		CheckIn:  strings.TrimSpace(f.CheckIn),
		CheckOut: strings.TrimSpace(f.CheckOut),
		Room:     models.RoomRef{Number: strings.TrimSpace(f.Room)},
		Holder:   models.GuestRef{Document: strings.TrimSpace(f.Document)},
	}
}

// ReservePage books a room for a guest.
type ReservePage struct {
	Form    ReservationForm     `json:"form"`
	Created *models.Reservation `json:"created,omitempty"`
	Error   string              `json:"error,omitempty"`
	Busy    bool                `json:"busy"`

	mu   sync.Mutex
	desk *Desk
}

// Submit validates and sends the form. The form is cleared on success and
// kept for correction on failure.
func (p *ReservePage) Submit(ctx context.Context, form ReservationForm) (*models.Reservation, error) {
	log := p.desk.log()
	req := form.Request()

	p.mu.Lock()
	p.Form = form
	if err := req.Validate(); err != nil {
		p.Error = Describe(err)
		p.mu.Unlock()
		return nil, err
	}
	if p.Busy {
		p.mu.Unlock()
		return nil, ErrBusy
	}
	p.Busy = true
	p.Error = ""
	p.mu.Unlock()

	log.Info("Creating reservation",
		logger.Action("reserve"),
		logger.Room(req.Room.Number),
		logger.Guest(req.Holder.Document),
		logger.F("CHECK_IN", req.CheckIn),
		logger.F("CHECK_OUT", req.CheckOut))
	created, err := p.desk.Reservations.CreateReservation(ctx, req)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.Busy = false
	if err != nil {
		p.Error = Describe(err)
		log.Error("Failed to create reservation", logger.Action("reserve"), logger.Room(req.Room.Number), logger.Error(err))
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	p.Form = ReservationForm{}
	p.Created = created
	log.Info("Reservation created", logger.Action("reserve"), logger.Reservation(created.ID), logger.Status("created"))
	return created, nil
}
