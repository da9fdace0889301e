package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// MaxDurationMin bounds duration_min to one week, the widest window the grid can show.
const MaxDurationMin = 7 * 24 * 60

// Accepted scheduled_time layouts. Layouts without an offset are read in the schedule location.
var scheduledTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// BookingRequest carries the raw, caller-supplied fields of a booking.
// Numeric fields stay strings until Validate so that parse failures are reported
// in the documented order.
type BookingRequest struct {
	FirstName   string
	LastName    string
	CustEmail   string
	CustPhone   string
	CustAddress string
	CustCity    string
	CustZip     string

	DelAddress    string
	DelCity       string
	DelZip        string
	ScheduledTime string
	UserID        string
	DurationMin   string
	Notes         string
	DelivStatus   string
}

type field struct {
	name  string
	value string
}

// Validate checks the request in order (required fields, duration, timestamp, then
// driver id and status) and builds the records to insert. It touches no storage.
func (r BookingRequest) Validate(loc *time.Location) (*Customer, *Delivery, error) {
	customerFields := []field{
		{"first_name", r.FirstName},
		{"last_name", r.LastName},
		{"cust_email", r.CustEmail},
		{"cust_address", r.CustAddress},
		{"cust_city", r.CustCity},
		{"cust_zip", r.CustZip},
	}
	deliveryFields := []field{
		{"del_address", r.DelAddress},
		{"del_city", r.DelCity},
		{"del_zip", r.DelZip},
		{"scheduled_time", r.ScheduledTime},
		{"user_id", r.UserID},
	}
	if missing := missingFields(customerFields); len(missing) > 0 {
		return nil, nil, fmt.Errorf("%w: missing customer fields: %s", ErrValidation, strings.Join(missing, ", "))
	}
	if missing := missingFields(deliveryFields); len(missing) > 0 {
		return nil, nil, fmt.Errorf("%w: missing delivery fields: %s", ErrValidation, strings.Join(missing, ", "))
	}

	duration, err := ParseDurationMin(r.DurationMin)
	if err != nil {
		return nil, nil, err
	}

	start, err := ParseScheduledTime(r.ScheduledTime, loc)
	if err != nil {
		return nil, nil, err
	}

	driverID, err := strconv.ParseInt(strings.TrimSpace(r.UserID), 10, 64)
	if err != nil || driverID <= 0 {
		return nil, nil, fmt.Errorf("%w: user_id must be a positive integer", ErrValidation)
	}

	status := StatusPending
	if strings.TrimSpace(r.DelivStatus) != "" {
		if status, err = ParseStatus(r.DelivStatus); err != nil {
			return nil, nil, err
		}
	}

	customer := &Customer{
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Email:     strings.TrimSpace(r.CustEmail),
		Phone:     strings.TrimSpace(r.CustPhone),
		Address:   strings.TrimSpace(r.CustAddress),
		City:      strings.TrimSpace(r.CustCity),
		Zip:       strings.TrimSpace(r.CustZip),
	}
	delivery := &Delivery{
		UserID:        driverID,
		Address:       strings.TrimSpace(r.DelAddress),
		City:          strings.TrimSpace(r.DelCity),
		Zip:           strings.TrimSpace(r.DelZip),
		ScheduledTime: start,
		DurationMin:   duration,
		Status:        status,
		Notes:         strings.TrimSpace(r.Notes),
	}

	return customer, delivery, nil
}

func missingFields(fields []field) []string {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// ParseDurationMin parses an optional duration in minutes.
// Empty input yields DefaultDurationMin; fractional minutes are rounded up.
func ParseDurationMin(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultDurationMin, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, fmt.Errorf("%w: duration_min must be a number greater than 0", ErrValidation)
	}
	if v > MaxDurationMin {
		return 0, fmt.Errorf("%w: duration_min must be at most %d", ErrValidation, MaxDurationMin)
	}

	return int(math.Ceil(v)), nil
}

// ParseScheduledTime parses an absolute start time. Values without an offset are read in loc.
// Sub-second precision is dropped so every store keeps the same instant.
func ParseScheduledTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range scheduledTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.Truncate(time.Second), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: scheduled_time %q is not a valid timestamp", ErrValidation, s)
}

// ParseDate parses a YYYY-MM-DD calendar date at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	t, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrValidation, s)
	}
	return t, nil
}
