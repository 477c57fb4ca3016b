// Package desk holds the page view-models of the front desk. Each page owns
// its state exclusively and exposes one method per user action; nothing is
// shared between pages.
package desk

import (
	"errors"
	"time"

	"github.com/EpicMandM/hotel-frontdesk/internal/config"
	"github.com/EpicMandM/hotel-frontdesk/internal/logger"
	"github.com/EpicMandM/hotel-frontdesk/internal/service"
)

// ErrBusy is returned when an action is started while the same action of the
// page is still running.
var ErrBusy = errors.New("action already in progress")

// Desk wires the backend collaborators every page draws from.
type Desk struct {
	Logger       *logger.Logger
	Guests       service.GuestAPI
	Rooms        service.RoomAPI
	Reservations service.ReservationAPI
	Invoices     service.InvoiceAPI
	Feature      *config.FeatureConfig
	Now          func() time.Time
}

// New builds a desk backed by a single REST backend.
func New(backend service.Backend, feature *config.FeatureConfig, log *logger.Logger) *Desk {
	return &Desk{
		Logger:       log,
		Guests:       backend,
		Rooms:        backend,
		Reservations: backend,
		Invoices:     backend,
		Feature:      feature,
		Now:          time.Now,
	}
}

func (d *Desk) log() *logger.Logger {
	if d.Logger == nil {
		return logger.Discard()
	}
	return d.Logger
}

func (d *Desk) feature() *config.FeatureConfig {
	if d.Feature == nil {
		return config.DefaultFeatureConfig()
	}
	return d.Feature
}

func (d *Desk) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// NewCancelPage opens the reservation cancellation page.
func (d *Desk) NewCancelPage() *CancelPage {
	return &CancelPage{desk: d}
}

// NewInvoicePage opens the invoicing page.
func (d *Desk) NewInvoicePage() *InvoicePage {
	return &InvoicePage{desk: d}
}

// NewRoomsPage opens the room status page.
func (d *Desk) NewRoomsPage() *RoomsPage {
	return &RoomsPage{desk: d}
}

// NewGuestPage opens the guest register/modify/remove page.
func (d *Desk) NewGuestPage() *GuestPage {
	return &GuestPage{desk: d}
}

// NewGuestSearchPage opens the guest search page.
func (d *Desk) NewGuestSearchPage() *GuestSearchPage {
	return &GuestSearchPage{desk: d}
}

// NewReservePage opens the reservation creation page.
func (d *Desk) NewReservePage() *ReservePage {
	return &ReservePage{desk: d}
}

// Describe renders err for display, preferring the backend's own message.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *service.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
