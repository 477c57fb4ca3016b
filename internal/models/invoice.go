package models

// InvoiceRequest is one element of the body of POST /facturas/crear.
type InvoiceRequest struct {
	ReservationID int64   `json:"idReserva"`
	Amount        float64 `json:"importeTotal"`
	IssuedAt      int64   `json:"fechaDeEmision"` // milliseconds since epoch
	Type          string  `json:"tipo"`
}

// Invoice is a created invoice as returned by the backend.
type Invoice struct {
	ID       *int64     `json:"id,omitempty"`
	Type     string     `json:"tipo"`
	Amount   FlexNumber `json:"importeTotal"`
	IssuedAt FlexDate   `json:"fechaDeEmision"`
}
