package desk

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/EpicMandM/hotel-frontdesk/internal/logger"
	"github.com/EpicMandM/hotel-frontdesk/internal/models"
)

// GuestSearchPage lists every guest matching a criterion.
type GuestSearchPage struct {
	Criterion models.GuestCriterion `json:"criterion"`
	Query     string                `json:"query"`
	Results   []models.Guest        `json:"results"`
	Searched  bool                  `json:"searched"`
	Error     string                `json:"error,omitempty"`
	Busy      bool                  `json:"busy"`

	mu   sync.Mutex
	desk *Desk
}

// Search runs a guest search. Blank input is ignored and leaves the page as
// it was. A failed search clears the results.
func (p *GuestSearchPage) Search(ctx context.Context, criterion models.GuestCriterion, query string) ([]models.Guest, error) {
	log := p.desk.log()
	query = strings.TrimSpace(query)

	p.mu.Lock()
	if query == "" {
		results := append([]models.Guest{}, p.Results...)
		p.mu.Unlock()
		return results, nil
	}
	if p.Busy {
		p.mu.Unlock()
		return nil, ErrBusy
	}
	p.Criterion = criterion
	p.Query = query
	p.Searched = true
	p.Busy = true
	p.Error = ""
	p.mu.Unlock()

	log.Info("Searching guests", logger.Action("guest_search"), logger.Query(query), logger.Mode(string(criterion)))
	found, err := p.desk.Guests.SearchGuests(ctx, criterion, query)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.Busy = false
	if err != nil {
		p.Results = []models.Guest{}
		p.Error = Describe(err)
		log.Error("Guest search failed", logger.Action("guest_search"), logger.Query(query), logger.Error(err))
		return nil, fmt.Errorf("failed to search guests: %w", err)
	}
	if found == nil {
		found = []models.Guest{}
	}
	p.Results = found
	log.Info("Guests found", logger.Action("guest_search"), logger.Query(query), logger.Count(len(found)))
	return append([]models.Guest{}, found...), nil
}
