package desk

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/EpicMandM/hotel-frontdesk/internal/frontdesk"
	"github.com/EpicMandM/hotel-frontdesk/internal/logger"
	"github.com/EpicMandM/hotel-frontdesk/internal/models"
	"github.com/samber/lo"
)

// InvoicePreview is the priced view shown before confirmation.
type InvoicePreview struct {
	Document string            `json:"document"`
	Holder   string            `json:"holder"`
	Invoice  frontdesk.Invoice `json:"invoice"`
}

// InvoiceResult summarises a confirmed batch.
type InvoiceResult struct {
	Requested int              `json:"requested"`
	Total     float64          `json:"total"`
	Created   []models.Invoice `json:"created"`
}

// InvoicePage prices a guest's reservations and emits invoices for them.
type InvoicePage struct {
	Document     string               `json:"document"`
	Reservations []models.Reservation `json:"reservations"`
	Error        string               `json:"error,omitempty"`
	Busy         bool                 `json:"busy"`
	Confirming   bool                 `json:"confirming"`

	mu   sync.Mutex
	desk *Desk
}

// Search loads the reservations held by a document number. A search with no
// results clears the page and reports ErrNotFound; a failed one keeps it.
func (p *InvoicePage) Search(ctx context.Context, document string) error {
	log := p.desk.log()
	document = strings.TrimSpace(document)
	if document == "" {
		return fmt.Errorf("%w: document is required", models.ErrValidation)
	}

	p.mu.Lock()
	if p.Busy {
		p.mu.Unlock()
		return ErrBusy
	}
	p.Busy = true
	p.Error = ""
	p.mu.Unlock()

	log.Info("Searching reservations to invoice", logger.Action("invoice_search"), logger.Guest(document))
	found, err := p.desk.Reservations.SearchReservationsByDocument(ctx, document)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.Busy = false

	if err != nil {
		p.Error = Describe(err)
		log.Error("Invoice search failed", logger.Action("invoice_search"), logger.Guest(document), logger.Error(err))
		return fmt.Errorf("failed to search reservations: %w", err)
	}
	if len(found) == 0 {
		p.Document = document
		p.Reservations = nil
		log.Info("No reservations to invoice", logger.Action("invoice_search"), logger.Guest(document), logger.Count(0))
		return fmt.Errorf("%w: no reservations for document %s", models.ErrNotFound, document)
	}

	p.Document = document
	p.Reservations = found
	log.Info("Reservations loaded", logger.Action("invoice_search"), logger.Guest(document), logger.Count(len(found)))
	return nil
}

// Preview prices the loaded reservations.
func (p *InvoicePage) Preview() InvoicePreview {
	p.mu.Lock()
	defer p.mu.Unlock()

	holder := "-"
	if len(p.Reservations) > 0 {
		holder = p.Reservations[0].Responsible().FullName()
	}
	return InvoicePreview{
		Document: p.Document,
		Holder:   holder,
		Invoice:  frontdesk.BuildInvoice(p.Reservations),
	}
}

// Confirm emits one invoice per loaded reservation. On success the page is
// cleared; on failure it is left as it was.
func (p *InvoicePage) Confirm(ctx context.Context) (*InvoiceResult, error) {
	log := p.desk.log()
	feature := p.desk.feature()

	p.mu.Lock()
	if len(p.Reservations) == 0 {
		p.mu.Unlock()
		return nil, fmt.Errorf("%w: no reservations to invoice", models.ErrValidation)
	}
	if p.Confirming {
		p.mu.Unlock()
		return nil, ErrBusy
	}
	p.Confirming = true
	reservations := append([]models.Reservation{}, p.Reservations...)
	p.mu.Unlock()

	requests := frontdesk.InvoiceRequests(
		reservations,
		p.desk.now,
		frontdesk.ParseEmissionPolicy(feature.Invoice.Emission),
		feature.Invoice.Type,
	)
	total := lo.SumBy(requests, func(r models.InvoiceRequest) float64 { return r.Amount })

	log.Info("Emitting invoices", logger.Action("invoice_confirm"), logger.Count(len(requests)), logger.Total(total))
	created, err := p.desk.Invoices.CreateInvoices(ctx, requests)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.Confirming = false

	if err != nil {
		p.Error = Describe(err)
		log.Error("Failed to emit invoices", logger.Action("invoice_confirm"), logger.Error(err))
		return nil, fmt.Errorf("failed to emit invoices: %w", err)
	}

	p.Document = ""
	p.Reservations = nil
	p.Error = ""
	log.Info("Invoices emitted", logger.Action("invoice_confirm"), logger.Count(len(created)), logger.Total(total), logger.Status("created"))
	return &InvoiceResult{Requested: len(requests), Total: total, Created: created}, nil
}
