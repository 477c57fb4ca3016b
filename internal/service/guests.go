package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/EpicMandM/hotel-frontdesk/internal/models"
)

// SearchGuests looks guests up by document, first name or surname.
func (c *Client) SearchGuests(ctx context.Context, criterion models.GuestCriterion, value string) ([]models.Guest, error) {
	var raw json.RawMessage
	req := models.GuestSearchRequest{Criterion: criterion, Value: value}
	if err := c.do(ctx, http.MethodPost, "/pasajeros/buscar", req, &raw); err != nil {
		return nil, err
	}
	return decodeGuestResults(raw)
}

// decodeGuestResults accepts either a bare array or a {resultados: [...]} wrapper.
func decodeGuestResults(raw json.RawMessage) ([]models.Guest, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []models.Guest{}, nil
	}

	if trimmed[0] == '[' {
		var guests []models.Guest
		if err := json.Unmarshal(trimmed, &guests); err != nil {
			return nil, fmt.Errorf("failed to decode guests: %w", err)
		}
		return guests, nil
	}

	var wrapped models.GuestSearchResponse
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode guests: %w", err)
	}
	if wrapped.Results == nil {
		return []models.Guest{}, nil
	}
	return wrapped.Results, nil
}

// RegisterGuest creates a guest and returns the stored record.
func (c *Client) RegisterGuest(ctx context.Context, guest models.Guest) (*models.Guest, error) {
	var created models.Guest
	if err := c.do(ctx, http.MethodPost, "/pasajeros/dar-alta", guest, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateGuest replaces the guest stored under id.
func (c *Client) UpdateGuest(ctx context.Context, id int64, guest models.Guest) (*models.Guest, error) {
	var updated models.Guest
	if err := c.do(ctx, http.MethodPut, "/pasajeros/"+strconv.FormatInt(id, 10), guest, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteGuest removes the guest stored under id.
func (c *Client) DeleteGuest(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/pasajeros/"+strconv.FormatInt(id, 10), nil, nil)
}
