package frontdesk

import (
	"sort"
	"strings"

	"github.com/EpicMandM/hotel-frontdesk/internal/models"
	"github.com/samber/lo"
)

// Status is a display category for a room.
type Status string

const (
	StatusFree        Status = "libre"
	StatusOccupied    Status = "ocupada"
	StatusReserved    Status = "reservada"
	StatusMaintenance Status = "mantenimiento"
)

// KnownStatuses lists the styled categories in display order.
var KnownStatuses = []Status{StatusFree, StatusOccupied, StatusReserved, StatusMaintenance}

// NormalizeStatus maps a raw backend code to its display category. Unknown
// codes pass through lowercased.
func NormalizeStatus(raw string) Status {
	switch raw {
	case models.RoomFree:
		return StatusFree
	case models.RoomOccupied:
		return StatusOccupied
	case models.RoomReserved:
		return StatusReserved
	case models.RoomMaintenance:
		return StatusMaintenance
	default:
		return Status(strings.ToLower(raw))
	}
}

// RoomView is a display row for one room.
type RoomView struct {
	Number string `json:"number"`
	Type   string `json:"type"`
	Status Status `json:"status"`
}

// Views converts backend rooms into display rows.
func Views(rooms []models.Room) []RoomView {
	return lo.Map(rooms, func(r models.Room, _ int) RoomView {
		return RoomView{
			Number: r.NumberOr("-"),
			Type:   r.TypeName(),
			Status: NormalizeStatus(r.Status),
		}
	})
}

// Summary holds per-category room counts.
type Summary struct {
	Total  int            `json:"total"`
	Counts map[Status]int `json:"counts"`
}

// Summarize counts rooms per display category. It is recomputed from the
// list on every call.
func Summarize(views []RoomView) Summary {
	groups := lo.GroupBy(views, func(v RoomView) Status { return v.Status })
	counts := make(map[Status]int, len(groups)+len(KnownStatuses))
	for _, s := range KnownStatuses {
		counts[s] = 0
	}
	for status, group := range groups {
		counts[status] = len(group)
	}
	return Summary{Total: len(views), Counts: counts}
}

// Count returns the number of rooms in a category.
func (s Summary) Count(status Status) int {
	return s.Counts[status]
}

// Categories returns known categories first, then any passthrough ones sorted.
func (s Summary) Categories() []Status {
	extra := make([]Status, 0)
	for status := range s.Counts {
		if !lo.Contains(KnownStatuses, status) {
			extra = append(extra, status)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(append([]Status{}, KnownStatuses...), extra...)
}

// Filter is a single-select status filter. The zero value shows every room.
type Filter struct {
	Selected Status `json:"selected,omitempty"`
}

// Toggle selects status, or clears the filter when status is already selected.
func (f *Filter) Toggle(status Status) {
	if f.Selected == status {
		f.Selected = ""
		return
	}
	f.Selected = status
}

// Active reports whether a category is selected.
func (f Filter) Active() bool {
	return f.Selected != ""
}

// Apply returns the rows matching the selected category, or all rows when unset.
func (f Filter) Apply(views []RoomView) []RoomView {
	if !f.Active() {
		return views
	}
	return lo.Filter(views, func(v RoomView, _ int) bool { return v.Status == f.Selected })
}
