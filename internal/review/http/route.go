package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/reviews")

	// Public reads
	group.GET("", h.List)
	group.GET("/:id", h.Get)

	group.POST("", authMiddleware, h.Create)
	group.PATCH("/:id", authMiddleware, h.Update)
	group.DELETE("/:id", authMiddleware, h.Delete)

	// Aggregate rating for an accommodation
	g.GET("/accommodations/:id/rating", h.Summary)
}
