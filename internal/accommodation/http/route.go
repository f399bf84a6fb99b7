package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/accommodations")

	// Public reads
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.GET("/:id/photos/:photo", h.GetPhoto)

	// Authenticated mutations (ownership enforced in the service)
	group.POST("", authMiddleware, h.Create)
	group.PATCH("/:id", authMiddleware, h.Update)
	group.DELETE("/:id", authMiddleware, h.Delete)
	group.POST("/:id/photos", authMiddleware, h.UploadPhoto)
}
