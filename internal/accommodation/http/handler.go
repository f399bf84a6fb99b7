package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dipika-maharjan/tripwise-backend/internal/accommodation"
	"github.com/dipika-maharjan/tripwise-backend/internal/auth"
	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/logger"
	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/request"
	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/response"
)

type Handler struct {
	service accommodation.Service
}

func NewHandler(service accommodation.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListAccommodationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	filter := accommodation.Filter{
		OwnerID:   req.OwnerID,
		City:      req.City,
		Keyword:   req.Keyword,
		IsActive:  req.IsActive,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: strings.ToUpper(req.SortOrder),
	}

	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]AccommodationResponse, len(list))
	for i, a := range list {
		items[i] = NewAccommodationResponse(a)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAccommodationResponse(a))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateAccommodationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	a, err := h.service.Create(c.Request.Context(), accommodation.CreateRequest{
		OwnerID:     userID,
		Name:        body.Name,
		Description: body.Description,
		Address:     body.Address,
		City:        body.City,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewAccommodationResponse(a))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateAccommodationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)

	a, err := h.service.Update(c.Request.Context(), uri.ID, accommodation.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		Address:     body.Address,
		City:        body.City,
		IsActive:    body.IsActive,
	}, userID, auth.IsSystemAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAccommodationResponse(a))
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

func (h *Handler) UploadPhoto(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}

	userID := auth.GetUserID(c)

	a, err := h.service.AddPhoto(c.Request.Context(), uri.ID, header, userID, auth.IsSystemAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewAccommodationResponse(a))
}

func (h *Handler) GetPhoto(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	name := c.Param("photo")
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo name"})
		return
	}

	content, err := h.service.Photo(c.Request.Context(), uri.ID, name)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer content.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, content); err != nil {
		logger.L().Warn("failed to stream photo", zap.Error(err))
	}
}
