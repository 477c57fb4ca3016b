package models

// Raw room status codes emitted by the backend.
const (
	RoomFree        = "LIBRE"
	RoomOccupied    = "OCUPADA"
	RoomReserved    = "RESERVADA"
	RoomMaintenance = "EN_MANTENIMIENTO"
)

// RoomType is a room category carrying the nightly rate.
type RoomType struct {
	ID        *int64     `json:"id,omitempty"`
	Name      string     `json:"nombre"`
	Rate      FlexNumber `json:"costoPorNoche"`
	Available int        `json:"cantidadDisponible"`
}

// Room is a bookable unit with a raw status code.
type Room struct {
	ID     *int64     `json:"id,omitempty"`
	Number FlexString `json:"numero"`
	Status string     `json:"estado"`
	Type   *RoomType  `json:"tipoHabitacion,omitempty"`
}

// TypeName returns the room type name, or "-" when absent.
func (r *Room) TypeName() string {
	if r == nil || r.Type == nil || r.Type.Name == "" {
		return "-"
	}
	return r.Type.Name
}

// NumberOr returns the room number, or def when absent.
func (r *Room) NumberOr(def string) string {
	if r == nil || r.Number == "" {
		return def
	}
	return string(r.Number)
}
