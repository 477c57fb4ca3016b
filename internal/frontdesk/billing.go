package frontdesk

import (
	"math"
	"time"

	"github.com/EpicMandM/hotel-frontdesk/internal/models"
	"github.com/samber/lo"
)

const (
	// TaxRate is the VAT applied on top of the subtotal.
	TaxRate = 0.21
	// DefaultInvoiceType is the invoice classifier used when none is configured.
	DefaultInvoiceType = "A"

	hoursPerDay = 24
)

// LineItem is one priced reservation on an invoice. Monetary values keep full
// precision; round only when displaying or serialising.
type LineItem struct {
	ReservationID int64   `json:"reservationId"`
	RoomNumber    string  `json:"roomNumber"`
	RoomType      string  `json:"roomType"`
	Nights        int     `json:"nights"`
	UnitPrice     float64 `json:"unitPrice"`
	Total         float64 `json:"total"`
	CheckIn       string  `json:"checkIn"`
	CheckOut      string  `json:"checkOut"`
}

// Invoice is the priced view of a set of reservations.
type Invoice struct {
	Lines    []LineItem `json:"lines"`
	Subtotal float64    `json:"subtotal"`
	Tax      float64    `json:"tax"`
	Total    float64    `json:"total"`
}

// NightsBetween returns whole nights between check-in and check-out, rounded
// to the nearest day. Missing or unparsable dates and reversed ranges give 0.
func NightsBetween(checkIn, checkOut models.FlexDate) int {
	if !checkIn.Valid || !checkOut.Valid {
		return 0
	}
	days := math.Round(checkOut.Time.Sub(checkIn.Time).Hours() / hoursPerDay)
	if days <= 0 {
		return 0
	}
	return int(days)
}

// UnitPrice returns the nightly rate of the room's type, 0 when absent.
func UnitPrice(room *models.Room) float64 {
	if room == nil || room.Type == nil {
		return 0
	}
	return room.Type.Rate.Float()
}

// LineTotal is nights × unit price for one reservation.
func LineTotal(r models.Reservation) float64 {
	return float64(NightsBetween(r.CheckIn, r.CheckOut)) * UnitPrice(r.Room)
}

// NewLineItem prices a single reservation.
func NewLineItem(r models.Reservation) LineItem {
	nights := NightsBetween(r.CheckIn, r.CheckOut)
	price := UnitPrice(r.Room)
	return LineItem{
		ReservationID: r.ID,
		RoomNumber:    r.Room.NumberOr("-"),
		RoomType:      r.Room.TypeName(),
		Nights:        nights,
		UnitPrice:     price,
		Total:         float64(nights) * price,
		CheckIn:       models.FormatDate(r.CheckIn),
		CheckOut:      models.FormatDate(r.CheckOut),
	}
}

// BuildInvoice prices reservations in input order.
func BuildInvoice(reservations []models.Reservation) Invoice {
	lines := lo.Map(reservations, func(r models.Reservation, _ int) LineItem {
		return NewLineItem(r)
	})
	subtotal := lo.SumBy(lines, func(l LineItem) float64 { return l.Total })
	tax := subtotal * TaxRate
	return Invoice{
		Lines:    lines,
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// GrandTotal is a single reservation's line total with tax applied.
func GrandTotal(r models.Reservation) float64 {
	line := LineTotal(r)
	return line + line*TaxRate
}

// Round2 rounds to cents for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// EmissionPolicy decides how invoice emission timestamps are captured.
type EmissionPolicy int

const (
	// EmissionPerBatch stamps every invoice of one confirmation identically.
	EmissionPerBatch EmissionPolicy = iota
	// EmissionPerLine reads the clock once per invoice.
	EmissionPerLine
)

// ParseEmissionPolicy maps the feature-config value to a policy.
func ParseEmissionPolicy(s string) EmissionPolicy {
	if s == "line" {
		return EmissionPerLine
	}
	return EmissionPerBatch
}

// InvoiceRequests builds one invoice-creation record per reservation. The
// amount is that reservation's own grand total.
func InvoiceRequests(reservations []models.Reservation, now func() time.Time, policy EmissionPolicy, kind string) []models.InvoiceRequest {
	if now == nil {
		now = time.Now
	}
	if kind == "" {
		kind = DefaultInvoiceType
	}

	batchStamp := now().UnixMilli()
	return lo.Map(reservations, func(r models.Reservation, i int) models.InvoiceRequest {
		stamp := batchStamp
		if policy == EmissionPerLine && i > 0 {
			stamp = now().UnixMilli()
		}
		return models.InvoiceRequest{
			ReservationID: r.ID,
			Amount:        GrandTotal(r),
			IssuedAt:      stamp,
			Type:          kind,
		}
	})
}
