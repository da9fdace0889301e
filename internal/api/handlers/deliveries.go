package handlers

import (
	"delivery-schedule-service/internal/api/dto"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/services"
	"net/http"
	"strconv"
	"strings"
	"time"
)

func toDeliveryResponse(d *domain.Delivery) dto.DeliveryResponse {
	return dto.DeliveryResponse{
		DelivID:       d.DelivID,
		UserID:        d.UserID,
		CustID:        d.CustID,
		DelAddress:    d.Address,
		DelCity:       d.City,
		DelZip:        d.Zip,
		ScheduledTime: d.ScheduledTime,
		EndTime:       d.EndTime(),
		DurationMin:   d.DurationMin,
		Slots:         domain.SlotsFor(d.DurationMin),
		DelivStatus:   string(d.Status),
		Notes:         d.Notes,
		CompletedAt:   d.CompletedAt,
	}
}

// Week handles GET /api/deliveries/week?driver=&start=|week_of=.
func (h *ScheduleHandler) Week(w http.ResponseWriter, r *http.Request) {
	if _, ok := caller(w, r); !ok {
		return
	}

	q := r.URL.Query()
	deliveries, window, err := h.Svc.ListDeliveriesForWeek(r.Context(), services.WeekQuery{
		Driver: q.Get("driver"),
		Start:  q.Get("start"),
		WeekOf: q.Get("week_of"),
	})
	if err != nil {
		writeServiceError(w, r, "list week", err)
		return
	}

	driver := strings.TrimSpace(q.Get("driver"))
	if driver == "" {
		driver = "all"
	}

	res := dto.WeekResponse{
		Driver:     driver,
		WeekStart:  window.Start,
		WeekEnd:    window.End,
		Deliveries: make([]dto.DeliveryResponse, 0, len(deliveries)),
	}
	for _, d := range deliveries {
		res.Deliveries = append(res.Deliveries, toDeliveryResponse(d))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Day handles GET /api/deliveries/day?date=&driver=.
func (h *ScheduleHandler) Day(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	views, window, err := h.Svc.ListDeliveriesForDay(r.Context(), c, q.Get("date"), q.Get("driver"))
	if err != nil {
		writeServiceError(w, r, "list day", err)
		return
	}

	slots := domain.SlotTimes(window.Start)
	res := dto.DayResponse{
		Date:       window.Start.Format(time.DateOnly),
		Grid:       make([]string, 0, len(slots)),
		Deliveries: make([]dto.DayDeliveryResponse, 0, len(views)),
	}
	for _, t := range slots {
		res.Grid = append(res.Grid, t.Format("15:04"))
	}
	for _, v := range views {
		res.Deliveries = append(res.Deliveries, dto.DayDeliveryResponse{
			DeliveryResponse: toDeliveryResponse(&v.Delivery),
			FirstName:        v.Customer.FirstName,
			LastName:         v.Customer.LastName,
			CustEmail:        v.Customer.Email,
			CustPhone:        v.Customer.Phone,
			CustAddress:      v.Customer.Address,
			CustCity:         v.Customer.City,
			CustZip:          v.Customer.Zip,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// Complete handles POST /api/deliveries/{id}/complete.
func (h *ScheduleHandler) Complete(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "delivery id must be a positive integer")
		return
	}

	d, err := h.Svc.CompleteDelivery(r.Context(), c, id)
	if err != nil {
		writeServiceError(w, r, "complete delivery", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toDeliveryResponse(d))
}

// Delete handles DELETE /api/deliveries/{id}.
func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}

	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "delivery id must be a positive integer")
		return
	}

	if err := h.Svc.DeleteDelivery(r.Context(), c, id); err != nil {
		writeServiceError(w, r, "delete delivery", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
