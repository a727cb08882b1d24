package events

import "time"

// Event types emitted on the reservation lifecycle stream.
const (
	TypeReservationBooked  = "reservation_booked"
	TypeReservationUpdated = "reservation_updated"
	TypeTableSeated        = "table_seated"
	TypeTableFinished      = "table_finished"
	TypeTableRemoved       = "table_removed"
)

// Event is the wire format of a reservation lifecycle event. Events are an
// operational audit tail, not guest-facing notifications.
type Event struct {
	Type          string    `json:"type"`
	ReservationID int64     `json:"reservation_id,omitempty"`
	TableID       int64     `json:"table_id,omitempty"`
	Status        string    `json:"status,omitempty"`
	People        int       `json:"people,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
