package domain

import "time"

// Guest is a plain CRUD profile referenced by reservations. It carries no
// occupancy semantics.
type Guest struct {
	ID        int64     `json:"guest_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Birthday  string    `json:"birthday"`
	Company   string    `json:"company"`
	Notes     string    `json:"notes"`
	Confirmed string    `json:"confirmed"`
	Section   string    `json:"section"`
	Waiter    string    `json:"waiter"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
