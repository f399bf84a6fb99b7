package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dipika-maharjan/tripwise-backend/internal/auth"
	"github.com/dipika-maharjan/tripwise-backend/internal/booking"
	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/request"
	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// parseDate is safe after the datetime binding has passed.
func parseDate(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

func selectionsFromRequest(in []ExtraSelectionRequest) []booking.ExtraSelection {
	if len(in) == 0 {
		return nil
	}
	out := make([]booking.ExtraSelection, len(in))
	for i, sel := range in {
		out[i] = booking.ExtraSelection{ExtraID: sel.ExtraID, Quantity: sel.Quantity}
	}
	return out
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)

	result, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		AccommodationID: body.AccommodationID,
		RoomTypeID:      body.RoomTypeID,
		CheckIn:         parseDate(body.CheckIn),
		CheckOut:        parseDate(body.CheckOut),
		Guests:          body.Guests,
		RoomsBooked:     body.RoomsBooked,
		Extras:          selectionsFromRequest(body.Extras),
		SpecialRequest:  body.SpecialRequest,
		PaymentStatus:   booking.PaymentStatus(body.PaymentStatus),
	}, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResultResponse(result))
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	userID := auth.GetUserID(c)

	filter := booking.Filter{
		AccommodationID: req.AccommodationID,
		RoomTypeID:      req.RoomTypeID,
		Status:          booking.Status(req.Status),
		Page:            req.Page,
		PageSize:        req.PageSize,
		SortBy:          req.SortBy,
		SortOrder:       strings.ToUpper(req.SortOrder),
	}

	list, total, err := h.service.List(c.Request.Context(), filter, userID, auth.IsSystemAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(list))
	for i, b := range list {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)

	b, err := h.service.GetByID(c.Request.Context(), uri.ID, userID, auth.IsSystemAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)

	result, err := h.service.Update(c.Request.Context(), uri.ID, booking.UpdateRequest{
		RoomTypeID:     body.RoomTypeID,
		CheckIn:        parseDate(body.CheckIn),
		CheckOut:       parseDate(body.CheckOut),
		Guests:         body.Guests,
		RoomsBooked:    body.RoomsBooked,
		Extras:         selectionsFromRequest(body.Extras),
		SpecialRequest: body.SpecialRequest,
	}, userID, auth.IsSystemAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResultResponse(result))
}

func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)

	if err := h.service.Cancel(c.Request.Context(), uri.ID, userID, auth.IsSystemAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateStatuses is the administrative status override.
func (h *Handler) UpdateStatuses(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateStatusesRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	var status *booking.Status
	if body.Status != nil {
		s := booking.Status(*body.Status)
		status = &s
	}
	var paymentStatus *booking.PaymentStatus
	if body.PaymentStatus != nil {
		p := booking.PaymentStatus(*body.PaymentStatus)
		paymentStatus = &p
	}

	if err := h.service.UpdateStatuses(c.Request.Context(), uri.ID, booking.StatusUpdate{
		Status:        status,
		PaymentStatus: paymentStatus,
	}); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)

	if err := h.service.Delete(c.Request.Context(), uri.ID, userID, auth.IsSystemAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
