package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/payments", authMiddleware)

	group.POST("", h.Record)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
}
