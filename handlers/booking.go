package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"decorhub/models"
	"decorhub/services/booking"
	"decorhub/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Svc booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

type bookingInput struct {
	ServiceID     string `json:"serviceId"`
	UserName      string `json:"userName"`
	BookingDate   string `json:"bookingDate"`
	Location      string `json:"location"`
	TransactionID string `json:"transactionId"`
}

// parseDate accepts RFC 3339 timestamps and plain calendar dates.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, utils.Validation("bookingDate must be YYYY-MM-DD or RFC 3339")
	}
	return t, nil
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var in bookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid input", err)
		return
	}
	req := booking.CreateBookingRequest{
		ServiceID:     in.ServiceID,
		UserEmail:     currentEmail(c),
		UserName:      in.UserName,
		Location:      in.Location,
		TransactionID: in.TransactionID,
	}
	if in.BookingDate != "" {
		date, err := parseDate(in.BookingDate)
		if err != nil {
			respondError(c, err)
			return
		}
		req.BookingDate = date
	}

	b, err := h.Svc.CreateBooking(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "booking": b})
}

// GetBooking handles GET /bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Svc.GetBooking(c.Request.Context(), c.Param("id"), currentEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateSchedule handles PATCH /bookings/:id.
func (h *BookingHandler) UpdateSchedule(c *gin.Context) {
	var in bookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid input", err)
		return
	}
	date, err := parseDate(in.BookingDate)
	if err != nil {
		respondError(c, err)
		return
	}
	b, err := h.Svc.UpdateSchedule(c.Request.Context(), c.Param("id"),
		booking.ScheduleRequest{BookingDate: date, Location: in.Location}, currentEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": b})
}

// CancelBooking handles DELETE /bookings/:id and PATCH /bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	b, err := h.Svc.Cancel(c.Request.Context(), c.Param("id"), currentEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": b})
}

// AssignDecorator handles PATCH /booking/:id.
func (h *BookingHandler) AssignDecorator(c *gin.Context) {
	var in struct {
		DecoratorID string `json:"decoratorId"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid input", err)
		return
	}
	b, err := h.Svc.AssignDecorator(c.Request.Context(), c.Param("id"), in.DecoratorID, currentEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": b})
}

// UnassignDecorator handles DELETE /booking/:id/decorator.
func (h *BookingHandler) UnassignDecorator(c *gin.Context) {
	b, err := h.Svc.UnassignDecorator(c.Request.Context(), c.Param("id"), currentEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": b})
}

// UpdateStatus handles PATCH /bookings/:id/status.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var in struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid input", err)
		return
	}
	b, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), in.Status, currentEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": b})
}

// ListBookings handles GET /bookings and GET /booking-decorator (admin).
func (h *BookingHandler) ListBookings(c *gin.Context) {
	q, err := bookingQueryFrom(c)
	if err != nil {
		respondError(c, err)
		return
	}
	page, err := h.Svc.ListAll(c.Request.Context(), q, currentEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func bookingQueryFrom(c *gin.Context) (models.BookingQuery, error) {
	q := models.BookingQuery{
		SortBy:    c.Query("sortBy"),
		SortOrder: strings.ToLower(c.Query("sortOrder")),
	}
	var err error
	if q.Page, err = queryInt(c, "page"); err != nil {
		return q, err
	}
	if q.Limit, err = queryInt(c, "limit"); err != nil {
		return q, err
	}
	if raw := c.Query("paymentStatus"); raw != "" {
		ps, err := models.ParsePaymentStatus(raw)
		if err != nil {
			return q, utils.Validation("%v", err)
		}
		q.PaymentStatus = ps
	}
	if raw := c.Query("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			st, err := models.ParseBookingStatus(part)
			if err != nil {
				return q, utils.Validation("%v", err)
			}
			q.Statuses = append(q.Statuses, st)
		}
	}
	return q, nil
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, utils.Validation("%s must be a positive integer", name)
	}
	return n, nil
}

// ListUserBookings handles GET /bookings/user/:email.
func (h *BookingHandler) ListUserBookings(c *gin.Context) {
	h.listFor(c, c.Param("email"))
}

// MyBookings handles GET /my-bookings.
func (h *BookingHandler) MyBookings(c *gin.Context) {
	h.listFor(c, currentEmail(c))
}

func (h *BookingHandler) listFor(c *gin.Context, email string) {
	items, err := h.Svc.ListForUser(c.Request.Context(), email, currentEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ManageBookings handles GET /manage-bookings for the calling decorator.
func (h *BookingHandler) ManageBookings(c *gin.Context) {
	items, err := h.Svc.ListForDecorator(c.Request.Context(), currentEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
