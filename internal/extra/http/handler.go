package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dipika-maharjan/tripwise-backend/internal/auth"
	"github.com/dipika-maharjan/tripwise-backend/internal/extra"
	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/request"
	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/response"
)

type Handler struct {
	service extra.Service
}

func NewHandler(service extra.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListExtrasRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	filter := extra.Filter{
		AccommodationID: req.AccommodationID,
		PriceType:       extra.PriceType(req.PriceType),
		IsActive:        req.IsActive,
		Page:            req.Page,
		PageSize:        req.PageSize,
		SortBy:          req.SortBy,
		SortOrder:       strings.ToUpper(req.SortOrder),
	}

	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ExtraResponse, len(list))
	for i, e := range list {
		items[i] = NewExtraResponse(e)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewExtraResponse(e))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateExtraRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)

	e, err := h.service.Create(c.Request.Context(), extra.CreateRequest{
		AccommodationID: body.AccommodationID,
		Name:            body.Name,
		Description:     body.Description,
		Price:           body.Price,
		PriceType:       extra.PriceType(body.PriceType),
	}, userID, auth.IsSystemAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewExtraResponse(e))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateExtraRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)

	var priceType *extra.PriceType
	if body.PriceType != nil {
		pt := extra.PriceType(*body.PriceType)
		priceType = &pt
	}

	e, err := h.service.Update(c.Request.Context(), uri.ID, extra.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		PriceType:   priceType,
		IsActive:    body.IsActive,
	}, userID, auth.IsSystemAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewExtraResponse(e))
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
