package dto

import "time"

type DeliveryResponse struct {
	DelivID       int64      `json:"deliv_id"`
	UserID        int64      `json:"user_id"`
	CustID        int64      `json:"cust_id"`
	DelAddress    string     `json:"del_address"`
	DelCity       string     `json:"del_city"`
	DelZip        string     `json:"del_zip"`
	ScheduledTime time.Time  `json:"scheduled_time"`
	EndTime       time.Time  `json:"end_time"`
	DurationMin   int        `json:"duration_min"`
	Slots         int        `json:"slots"`
	DelivStatus   string     `json:"deliv_status"`
	Notes         string     `json:"notes"`
	CompletedAt   *time.Time `json:"completed_at"`
}

type WeekResponse struct {
	Driver     string             `json:"driver"`
	WeekStart  time.Time          `json:"week_start"`
	WeekEnd    time.Time          `json:"week_end"`
	Deliveries []DeliveryResponse `json:"deliveries"`
}

// Day view row: delivery fields flattened together with the customer's.
type DayDeliveryResponse struct {
	DeliveryResponse
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CustEmail   string `json:"cust_email"`
	CustPhone   string `json:"cust_phone"`
	CustAddress string `json:"cust_address"`
	CustCity    string `json:"cust_city"`
	CustZip     string `json:"cust_zip"`
}

type DayResponse struct {
	Date string `json:"date"`
	// Row labels of the day grid (HH:MM).
	Grid       []string              `json:"grid"`
	Deliveries []DayDeliveryResponse `json:"deliveries"`
}
