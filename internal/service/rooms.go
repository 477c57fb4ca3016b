package service

import (
	"context"
	"net/http"

	"github.com/EpicMandM/hotel-frontdesk/internal/models"
)

// ListRooms returns every room with its status and type.
func (c *Client) ListRooms(ctx context.Context) ([]models.Room, error) {
	rooms := make([]models.Room, 0)
	if err := c.do(ctx, http.MethodGet, "/habitaciones/listar", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}
