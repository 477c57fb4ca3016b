package service

import (
	"context"

	"github.com/EpicMandM/hotel-frontdesk/internal/models"
)

// GuestAPI abstracts guest operations for testability.
type GuestAPI interface {
	SearchGuests(ctx context.Context, criterion models.GuestCriterion, value string) ([]models.Guest, error)
	RegisterGuest(ctx context.Context, guest models.Guest) (*models.Guest, error)
	UpdateGuest(ctx context.Context, id int64, guest models.Guest) (*models.Guest, error)
	DeleteGuest(ctx context.Context, id int64) error
}

// RoomAPI abstracts room listing for testability.
type RoomAPI interface {
	ListRooms(ctx context.Context) ([]models.Room, error)
}

// ReservationAPI abstracts reservation operations for testability.
type ReservationAPI interface {
	SearchReservationsByName(ctx context.Context, name string) ([]models.Reservation, error)
	SearchReservationsByDocument(ctx context.Context, document string) ([]models.Reservation, error)
	CancelReservation(ctx context.Context, id int64) error
	CreateReservation(ctx context.Context, req models.CreateReservationRequest) (*models.Reservation, error)
}

// InvoiceAPI abstracts invoice creation for testability.
type InvoiceAPI interface {
	CreateInvoices(ctx context.Context, invoices []models.InvoiceRequest) ([]models.Invoice, error)
}

// Backend is everything the front desk needs from the hotel REST service.
type Backend interface {
	GuestAPI
	RoomAPI
	ReservationAPI
	InvoiceAPI
}

var _ Backend = (*Client)(nil)
