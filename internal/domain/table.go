package domain

import "time"

type TableStatus string

const (
	TableStatusFree     TableStatus = "free"
	TableStatusOccupied TableStatus = "occupied"
)

// Table is a physical table in the dining room. ReservationID is set iff
// Status is occupied, and the referenced reservation is then seated.
type Table struct {
	ID            int64       `json:"table_id"`
	TableName     string      `json:"table_name"`
	Capacity      int         `json:"capacity"`
	Status        TableStatus `json:"table_status"`
	ReservationID *int64      `json:"reservation_id,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
