package reservations

import (
	"fmt"
	"math"
	"time"

	"tablebook/config"
	"tablebook/internal/domain"
)

// ReservationInput is the raw booking payload. People is decoded untyped so
// the validator can tell a JSON string "2" apart from the number 2.
type ReservationInput struct {
	FirstName       string      `json:"first_name"`
	LastName        string      `json:"last_name"`
	MobileNumber    string      `json:"mobile_number"`
	ReservationDate string      `json:"reservation_date"`
	ReservationTime string      `json:"reservation_time"`
	People          interface{} `json:"people"`
	GuestID         *int64      `json:"guest_id"`
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Validator applies the admission rules to a proposed reservation before
// anything touches storage. Checks run in a fixed order and the first
// failure wins: required fields, date/time syntax, party size, future-only,
// closed day, operating window.
type Validator struct {
	hours config.Hours
}

func NewValidator(hours config.Hours) *Validator {
	return &Validator{hours: hours}
}

// Validate returns the party size on acceptance, or a
// *domain.ValidationError naming the offending field.
func (v *Validator) Validate(in ReservationInput, now time.Time) (int, error) {
	if in.FirstName == "" {
		return 0, domain.Validationf("first_name", "first_name is required")
	}
	if in.LastName == "" {
		return 0, domain.Validationf("last_name", "last_name is required")
	}
	if in.MobileNumber == "" {
		return 0, domain.Validationf("mobile_number", "mobile_number is required")
	}
	if in.ReservationDate == "" {
		return 0, domain.Validationf("reservation_date", "reservation_date is required")
	}
	date, err := time.Parse(dateLayout, in.ReservationDate)
	if err != nil {
		return 0, domain.Validationf("reservation_date", "reservation_date must be a valid date")
	}
	if in.ReservationTime == "" {
		return 0, domain.Validationf("reservation_time", "reservation_time is required")
	}
	clock, err := time.Parse(timeLayout, in.ReservationTime)
	if err != nil {
		return 0, domain.Validationf("reservation_time", "reservation_time must be a valid time")
	}
	people, err := peopleCount(in.People)
	if err != nil {
		return 0, err
	}

	at := time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, now.Location())
	if !at.After(now) {
		return 0, domain.Validationf("reservation_date", "reservation must be in the future")
	}
	if at.Weekday() == v.hours.ClosedWeekday {
		return 0, domain.Validationf("reservation_date", "the restaurant is closed on %ss", v.hours.ClosedWeekday)
	}
	offset := time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute
	if offset <= v.hours.Open || offset >= v.hours.LastSeating {
		return 0, domain.Validationf("reservation_time", "reservation_time must be after %s and before %s",
			clockString(v.hours.Open), clockString(v.hours.LastSeating))
	}
	return people, nil
}

// peopleCount accepts the JSON numbers encoding/json produces (float64) and
// plain ints from in-process callers. Anything else, a string in
// particular, is a type error.
func peopleCount(value interface{}) (int, error) {
	if value == nil {
		return 0, domain.Validationf("people", "people is required")
	}
	var people int
	switch n := value.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, domain.Validationf("people", "people must be a whole number")
		}
		people = int(n)
	case int:
		people = n
	default:
		return 0, domain.Validationf("people", "people must be a number")
	}
	if people < 1 {
		return 0, domain.Validationf("people", "people must be at least 1")
	}
	return people, nil
}

func clockString(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", d/time.Hour, d%time.Hour/time.Minute)
}
