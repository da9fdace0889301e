package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexString accepts a JSON string, number or null. Form-driven clients send
// numeric fields either way.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*f = FlexString(n.String())
	return nil
}

type CreateBookingRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CustEmail   string `json:"cust_email"`
	CustPhone   string `json:"cust_phone"`
	CustAddress string `json:"cust_address"`
	CustCity    string `json:"cust_city"`
	CustZip     string `json:"cust_zip"`

	DelAddress    string     `json:"del_address"`
	DelCity       string     `json:"del_city"`
	DelZip        string     `json:"del_zip"`
	ScheduledTime string     `json:"scheduled_time"`
	UserID        FlexString `json:"user_id"`
	DurationMin   FlexString `json:"duration_min"`
	Notes         string     `json:"notes"`
	DelivStatus   string     `json:"deliv_status"`
}

type CreateBookingResponse struct {
	DelivID int64 `json:"deliv_id"`
	CustID  int64 `json:"cust_id"`
}
