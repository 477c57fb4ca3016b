package models

import (
	"fmt"
	"strings"
)

// Reservation is a booking of one Room for a date range.
type Reservation struct {
	ID           int64    `json:"id"`
	CheckIn      FlexDate `json:"fechaIngreso"`
	CheckOut     FlexDate `json:"fechaEgreso"`
	Room         *Room    `json:"habitacion,omitempty"`
	Guests       []Guest  `json:"pasajeros,omitempty"`
	Holder       *Guest   `json:"responsable,omitempty"`
	LegacyHolder *Guest   `json:"responsableReserva,omitempty"`
}

// Responsible returns the holder or the legacy holder field. Attached guests
// are not considered.
func (r *Reservation) Responsible() *Guest {
	if r.Holder != nil {
		return r.Holder
	}
	return r.LegacyHolder
}

// ResponsibleGuest returns Responsible, falling back to the first attached
// guest.
func (r *Reservation) ResponsibleGuest() *Guest {
	if g := r.Responsible(); g != nil {
		return g
	}
	if len(r.Guests) > 0 {
		return &r.Guests[0]
	}
	return nil
}

// RoomRef identifies a room by number in a create request.
type RoomRef struct {
	Number string `json:"numero"`
}

// GuestRef identifies a guest by document in a create request.
type GuestRef struct {
	Document string `json:"nroDocumento"`
}

// CreateReservationRequest is the body of POST /reservas/crear.
type CreateReservationRequest struct {
	CheckIn  string   `json:"fechaIngreso"`
	CheckOut string   `json:"fechaEgreso"`
	Room     RoomRef  `json:"habitacion"`
	Holder   GuestRef `json:"responsable"`
}

// Validate reports missing or inconsistent fields.
func (r *CreateReservationRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Room.Number) == "" {
		missing = append(missing, "habitacion")
	}
	if strings.TrimSpace(r.CheckIn) == "" {
		missing = append(missing, "fechaIngreso")
	}
	if strings.TrimSpace(r.CheckOut) == "" {
		missing = append(missing, "fechaEgreso")
	}
	if strings.TrimSpace(r.Holder.Document) == "" {
		missing = append(missing, "responsable")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}

	in, out := ParseDate(r.CheckIn), ParseDate(r.CheckOut)
	if !in.Valid || !out.Valid {
		return fmt.Errorf("%w: dates must be YYYY-MM-DD", ErrValidation)
	}
	if !out.Time.After(in.Time) {
		return fmt.Errorf("%w: check-out must be after check-in", ErrValidation)
	}
	return nil
}
