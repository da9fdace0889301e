package domain

// Represents the customer a delivery is booked for.
// A Customer is created exactly once per booking, inside the booking unit,
// and is never updated afterwards.
type Customer struct {
	CustID    int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	Zip       string
}
