package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dipika-maharjan/tripwise-backend/internal/auth"
	"github.com/dipika-maharjan/tripwise-backend/internal/payment"
	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/request"
	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/response"
)

type Handler struct {
	service payment.Service
}

func NewHandler(service payment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Record(c *gin.Context) {
	var body RecordPaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)

	p, err := h.service.Record(c.Request.Context(), payment.RecordRequest{
		BookingID:      body.BookingID,
		Amount:         body.Amount,
		Method:         payment.Method(body.Method),
		TransactionRef: body.TransactionRef,
	}, userID, auth.IsSystemAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewPaymentResponse(p))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)

	p, err := h.service.GetByID(c.Request.Context(), uri.ID, userID, auth.IsSystemAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPaymentResponse(p))
}

func (h *Handler) List(c *gin.Context) {
	var req ListPaymentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	userID := auth.GetUserID(c)

	filter := payment.Filter{
		BookingID: req.BookingID,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}

	list, total, err := h.service.List(c.Request.Context(), filter, userID, auth.IsSystemAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PaymentResponse, len(list))
	for i, p := range list {
		items[i] = NewPaymentResponse(p)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}
