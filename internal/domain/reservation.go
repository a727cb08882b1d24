package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusBooked   ReservationStatus = "booked"
	ReservationStatusSeated   ReservationStatus = "seated"
	ReservationStatusFinished ReservationStatus = "finished"
)

type Reservation struct {
	ID              int64             `json:"reservation_id"`
	FirstName       string            `json:"first_name"`
	LastName        string            `json:"last_name"`
	MobileNumber    string            `json:"mobile_number"`
	ReservationDate string            `json:"reservation_date"`
	ReservationTime string            `json:"reservation_time"`
	People          int               `json:"people"`
	Status          ReservationStatus `json:"status"`
	GuestID         *int64            `json:"guest_id,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
