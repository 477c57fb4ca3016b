package desk

import (
	"context"
	"net/http"
	"testing"

	"github.com/EpicMandM/hotel-frontdesk/internal/models"
	"github.com/EpicMandM/hotel-frontdesk/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validReservationForm() ReservationForm {
	return ReservationForm{Room: " 101 ", CheckIn: "2024-01-01", CheckOut: "2024-01-03", Document: "30111222"}
}

func TestReservePage_Submit(t *testing.T) {
	d, buf := newTestDesk()
	var got models.CreateReservationRequest
	d.Reservations = &mockReservations{
		createFn: func(_ context.Context, req models.CreateReservationRequest) (*models.Reservation, error) {
			got = req
			return &models.Reservation{ID: 77}, nil
		},
	}
	page := d.NewReservePage()

	created, err := page.Submit(context.Background(), validReservationForm())
	require.NoError(t, err)

	assert.Equal(t, int64(77), created.ID)
	assert.Equal(t, models.CreateReservationRequest{
		CheckIn:  "2024-01-01",
		CheckOut: "2024-01-03",
		Room:     models.RoomRef{Number: "101"},
		Holder:   models.GuestRef{Document: "30111222"},
	}, got)
	assert.Equal(t, ReservationForm{}, page.Form, "form is cleared on success")
	assert.Same(t, created, page.Created)
	assert.Contains(t, buf.String(), "RESERVATION=77")
}

func TestReservePage_SubmitValidation(t *testing.T) {
	tests := []struct {
		name string
		edit func(f *ReservationForm)
		want string
	}{
		{"missing room", func(f *ReservationForm) { f.Room = "" }, "habitacion"},
		{"missing holder", func(f *ReservationForm) { f.Document = "  " }, "responsable"},
		{"bad date", func(f *ReservationForm) { f.CheckIn = "01/01/2024" }, "YYYY-MM-DD"},
		{"same day", func(f *ReservationForm) { f.CheckOut = f.CheckIn }, "check-out must be after check-in"},
		{"reversed", func(f *ReservationForm) { f.CheckIn, f.CheckOut = f.CheckOut, f.CheckIn }, "check-out must be after check-in"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDesk()
			called := false
			d.Reservations = &mockReservations{
				createFn: func(context.Context, models.CreateReservationRequest) (*models.Reservation, error) {
					called = true
					return nil, nil
				},
			}
			form := validReservationForm()
			tt.edit(&form)

			_, err := d.NewReservePage().Submit(context.Background(), form)
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrValidation)
			assert.Contains(t, err.Error(), tt.want)
			assert.False(t, called, "invalid forms never reach the backend")
		})
	}
}

func TestReservePage_SubmitBackendError(t *testing.T) {
	d, _ := newTestDesk()
	d.Reservations = &mockReservations{
		createFn: func(context.Context, models.CreateReservationRequest) (*models.Reservation, error) {
			return nil, &service.APIError{Status: http.StatusConflict, Message: "Habitación no disponible"}
		},
	}
	page := d.NewReservePage()
	form := validReservationForm()

	_, err := page.Submit(context.Background(), form)
	require.Error(t, err)
	assert.True(t, service.IsStatus(err, http.StatusConflict))
	assert.Equal(t, form, page.Form, "form is kept for correction")
	assert.Equal(t, "Habitación no disponible", page.Error)
	assert.False(t, page.Busy)
}
