package desk

import (
	"context"
	"fmt"
	"sync"

	"github.com/EpicMandM/hotel-frontdesk/internal/frontdesk"
	"github.com/EpicMandM/hotel-frontdesk/internal/logger"
)

// RoomsPage shows every room with a per-status summary and a status filter.
type RoomsPage struct {
	Rooms  []frontdesk.RoomView `json:"rooms"`
	Filter frontdesk.Filter     `json:"filter"`
	Error  string               `json:"error,omitempty"`
	Busy   bool                 `json:"busy"`

	mu   sync.Mutex
	desk *Desk
}

// Load fetches the room list. A failure keeps the rooms already shown.
func (p *RoomsPage) Load(ctx context.Context) error {
	log := p.desk.log()

	p.mu.Lock()
	if p.Busy {
		p.mu.Unlock()
		return ErrBusy
	}
	p.Busy = true
	p.Error = ""
	p.mu.Unlock()

	rooms, err := p.desk.Rooms.ListRooms(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.Busy = false
	if err != nil {
		p.Error = Describe(err)
		log.Error("Failed to load rooms", logger.Action("rooms"), logger.Error(err))
		return fmt.Errorf("failed to load rooms: %w", err)
	}

	p.Rooms = frontdesk.Views(rooms)
	log.Info("Rooms loaded", logger.Action("rooms"), logger.Count(len(p.Rooms)))
	return nil
}

// Summary counts the loaded rooms per category.
func (p *RoomsPage) Summary() frontdesk.Summary {
	p.mu.Lock()
	defer p.mu.Unlock()
	return frontdesk.Summarize(p.Rooms)
}

// Toggle selects a status filter, or clears it when already selected.
func (p *RoomsPage) Toggle(status frontdesk.Status) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Filter.Toggle(status)
}

// Visible returns the rooms matching the current filter.
func (p *RoomsPage) Visible() []frontdesk.RoomView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]frontdesk.RoomView{}, p.Filter.Apply(p.Rooms)...)
}
