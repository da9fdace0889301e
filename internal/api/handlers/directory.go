package handlers

import (
	"delivery-schedule-service/internal/api/dto"
	"net/http"
)

func (h *ScheduleHandler) Customers(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}

	customers, err := h.Svc.ListCustomers(r.Context(), c)
	if err != nil {
		writeServiceError(w, r, "list customers", err)
		return
	}

	res := dto.ListCustomersResponse{Customers: make([]dto.CustomerResponse, 0, len(customers))}
	for _, cu := range customers {
		res.Customers = append(res.Customers, dto.CustomerResponse{
			CustID:      cu.CustID,
			FirstName:   cu.FirstName,
			LastName:    cu.LastName,
			CustEmail:   cu.Email,
			CustPhone:   cu.Phone,
			CustAddress: cu.Address,
			CustCity:    cu.City,
			CustZip:     cu.Zip,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Users lists user accounts. Admin only.
func (h *ScheduleHandler) Users(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}

	users, err := h.Svc.ListUsers(r.Context(), c)
	if err != nil {
		writeServiceError(w, r, "list users", err)
		return
	}

	res := dto.ListUsersResponse{Users: make([]dto.UserResponse, 0, len(users))}
	for _, u := range users {
		res.Users = append(res.Users, dto.UserResponse{
			UserID:    u.UserID,
			UserName:  u.Name,
			UserEmail: u.Email,
			Role:      string(u.Role),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Me echoes the caller identity carried by the token.
func Me(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}

	writeJSON(w, r, http.StatusOK, dto.MeResponse{UserID: c.UserID, Role: string(c.Role)})
}
