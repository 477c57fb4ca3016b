package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/EpicMandM/hotel-frontdesk/internal/models"
)

// SearchReservationsByName finds reservations whose holder matches a name.
func (c *Client) SearchReservationsByName(ctx context.Context, name string) ([]models.Reservation, error) {
	return c.searchReservations(ctx, "/reservas/buscar", "nombre", name)
}

// SearchReservationsByDocument finds reservations held by a document number.
func (c *Client) SearchReservationsByDocument(ctx context.Context, document string) ([]models.Reservation, error) {
	return c.searchReservations(ctx, "/reservas/buscar-por-dni", "dni", document)
}

func (c *Client) searchReservations(ctx context.Context, path, param, value string) ([]models.Reservation, error) {
	query := url.Values{}
	query.Set(param, value)

	reservations := make([]models.Reservation, 0)
	if err := c.do(ctx, http.MethodGet, path+"?"+query.Encode(), nil, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// CancelReservation deletes a reservation by id.
func (c *Client) CancelReservation(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/reservas/"+strconv.FormatInt(id, 10), nil, nil)
}

// CreateReservation books a room for a holder. The request is validated first
// and never sent when invalid.
func (c *Client) CreateReservation(ctx context.Context, req models.CreateReservationRequest) (*models.Reservation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var created models.Reservation
	if err := c.do(ctx, http.MethodPost, "/reservas/crear", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
