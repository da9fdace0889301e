package handlers

import (
	"delivery-schedule-service/internal/api/dto"
	"delivery-schedule-service/internal/domain"
	"encoding/json"
	"io"
	"net/http"
)

const maxBodyBytes = 1 << 20

// CreateBooking handles POST /api/deliveries.
func (h *ScheduleHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}

	// Role comes before any body parsing: drivers get 403 whatever they send.
	if !c.Role.CanBook() {
		writeError(w, r, http.StatusForbidden, "role \""+string(c.Role)+"\" may not create bookings")
		return
	}

	var req dto.CreateBookingRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	res, err := h.Svc.CreateBooking(r.Context(), c, domain.BookingRequest{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		CustEmail:     req.CustEmail,
		CustPhone:     req.CustPhone,
		CustAddress:   req.CustAddress,
		CustCity:      req.CustCity,
		CustZip:       req.CustZip,
		DelAddress:    req.DelAddress,
		DelCity:       req.DelCity,
		DelZip:        req.DelZip,
		ScheduledTime: req.ScheduledTime,
		UserID:        string(req.UserID),
		DurationMin:   string(req.DurationMin),
		Notes:         req.Notes,
		DelivStatus:   req.DelivStatus,
	})
	if err != nil {
		writeServiceError(w, r, "create booking", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.CreateBookingResponse{DelivID: res.DelivID, CustID: res.CustID})
}
