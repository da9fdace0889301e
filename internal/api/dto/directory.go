package dto

type CustomerResponse struct {
	CustID      int64  `json:"cust_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CustEmail   string `json:"cust_email"`
	CustPhone   string `json:"cust_phone"`
	CustAddress string `json:"cust_address"`
	CustCity    string `json:"cust_city"`
	CustZip     string `json:"cust_zip"`
}

type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

type UserResponse struct {
	UserID    int64  `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	Role      string `json:"role"`
}

type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

type MeResponse struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}
