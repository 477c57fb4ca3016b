package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/EpicMandM/hotel-frontdesk/internal/models"
)

// CreateInvoices posts one invoice per request in a single call.
func (c *Client) CreateInvoices(ctx context.Context, invoices []models.InvoiceRequest) ([]models.Invoice, error) {
	if len(invoices) == 0 {
		return nil, fmt.Errorf("%w: no invoices to create", models.ErrValidation)
	}

	created := make([]models.Invoice, 0, len(invoices))
	if err := c.do(ctx, http.MethodPost, "/facturas/crear", invoices, &created); err != nil {
		return nil, err
	}
	return created, nil
}
