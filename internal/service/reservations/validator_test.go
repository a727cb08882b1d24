package reservations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablebook/config"
	"tablebook/internal/domain"
)

func defaultHours(t *testing.T) config.Hours {
	t.Helper()
	hours, err := config.RestaurantConfig{}.Hours()
	require.NoError(t, err)
	return hours
}

// 2030-01-04 is a Friday; the fixed "now" keeps every case deterministic.
var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func validInput() ReservationInput {
	return ReservationInput{
		FirstName:       "first",
		LastName:        "last",
		MobileNumber:    "800-555-1212",
		ReservationDate: "2030-01-04",
		ReservationTime: "17:30",
		People:          float64(2),
	}
}

func TestValidator_Accepts(t *testing.T) {
	v := NewValidator(defaultHours(t))

	people, err := v.Validate(validInput(), testNow)

	assert.NoError(t, err)
	assert.Equal(t, 2, people)
}

func TestValidator_AcceptsPlainInt(t *testing.T) {
	v := NewValidator(defaultHours(t))

	in := validInput()
	in.People = 3

	people, err := v.Validate(in, testNow)

	assert.NoError(t, err)
	assert.Equal(t, 3, people)
}

func TestValidator_RequiredFields(t *testing.T) {
	v := NewValidator(defaultHours(t))

	testCases := []struct {
		name     string
		mutate   func(*ReservationInput)
		field    string
		contains string
	}{
		{
			name:   "missing first_name",
			mutate: func(in *ReservationInput) { in.FirstName = "" },
			field:  "first_name",
		},
		{
			name:   "missing last_name",
			mutate: func(in *ReservationInput) { in.LastName = "" },
			field:  "last_name",
		},
		{
			name:   "missing mobile_number",
			mutate: func(in *ReservationInput) { in.MobileNumber = "" },
			field:  "mobile_number",
		},
		{
			name:   "missing reservation_date",
			mutate: func(in *ReservationInput) { in.ReservationDate = "" },
			field:  "reservation_date",
		},
		{
			name:   "unparseable reservation_date",
			mutate: func(in *ReservationInput) { in.ReservationDate = "not-a-date" },
			field:  "reservation_date",
		},
		{
			name:   "missing reservation_time",
			mutate: func(in *ReservationInput) { in.ReservationTime = "" },
			field:  "reservation_time",
		},
		{
			name:   "unparseable reservation_time",
			mutate: func(in *ReservationInput) { in.ReservationTime = "not-a-time" },
			field:  "reservation_time",
		},
		{
			name:   "missing people",
			mutate: func(in *ReservationInput) { in.People = nil },
			field:  "people",
		},
		{
			name:     "people as string",
			mutate:   func(in *ReservationInput) { in.People = "2" },
			field:    "people",
			contains: "number",
		},
		{
			name:   "people zero",
			mutate: func(in *ReservationInput) { in.People = float64(0) },
			field:  "people",
		},
		{
			name:   "people fractional",
			mutate: func(in *ReservationInput) { in.People = 2.5 },
			field:  "people",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			_, err := v.Validate(in, testNow)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.Contains(t, verr.Message, tc.field)
			if tc.contains != "" {
				assert.Contains(t, verr.Message, tc.contains)
			}
		})
	}
}

func TestValidator_RejectsPastDate(t *testing.T) {
	v := NewValidator(defaultHours(t))

	in := validInput()
	in.ReservationDate = "1999-01-01"

	_, err := v.Validate(in, testNow)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "future")
}

func TestValidator_RejectsSameMoment(t *testing.T) {
	v := NewValidator(defaultHours(t))

	in := validInput()
	in.ReservationDate = "2030-01-04"
	in.ReservationTime = "17:30"
	at := time.Date(2030, 1, 4, 17, 30, 0, 0, time.UTC)

	_, err := v.Validate(in, at)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "future")
}

func TestValidator_RejectsClosedWeekday(t *testing.T) {
	v := NewValidator(defaultHours(t))

	in := validInput()
	in.ReservationDate = "2030-01-01" // a Tuesday

	_, err := v.Validate(in, testNow)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "closed")
}

func TestValidator_RejectsOutsideOperatingWindow(t *testing.T) {
	v := NewValidator(defaultHours(t))

	for _, at := range []string{"05:30", "09:30", "10:30", "21:30", "22:45", "23:30"} {
		t.Run(at, func(t *testing.T) {
			in := validInput()
			in.ReservationTime = at

			_, err := v.Validate(in, testNow)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "reservation_time", verr.Field)
		})
	}
}

func TestValidator_AcceptsWindowInterior(t *testing.T) {
	v := NewValidator(defaultHours(t))

	for _, at := range []string{"10:31", "13:30", "21:29"} {
		t.Run(at, func(t *testing.T) {
			in := validInput()
			in.ReservationTime = at

			_, err := v.Validate(in, testNow)
			assert.NoError(t, err)
		})
	}
}

func TestValidator_ConfiguredWindow(t *testing.T) {
	hours, err := config.RestaurantConfig{
		ClosedWeekday: "monday",
		OpenTime:      "08:00",
		LastSeating:   "23:00",
	}.Hours()
	require.NoError(t, err)
	v := NewValidator(hours)

	in := validInput()
	in.ReservationTime = "22:30"
	_, err = v.Validate(in, testNow)
	assert.NoError(t, err)

	// 2030-01-07 is a Monday
	in = validInput()
	in.ReservationDate = "2030-01-07"
	_, err = v.Validate(in, testNow)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "closed")
}

func TestValidator_CheckOrder(t *testing.T) {
	v := NewValidator(defaultHours(t))

	// A payload violating several rules at once reports the first failing
	// check: required fields before temporal rules.
	in := validInput()
	in.FirstName = ""
	in.ReservationDate = "1999-01-01" // also in the past
	in.ReservationTime = "05:30"      // also outside the window

	_, err := v.Validate(in, testNow)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "first_name", verr.Field)

	// With the fields present, the past date is reported before the window.
	in = validInput()
	in.ReservationDate = "1999-01-01"
	in.ReservationTime = "05:30"

	_, err = v.Validate(in, testNow)

	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "future")
}
