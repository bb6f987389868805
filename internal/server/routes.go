package server

import (
	"github.com/gin-gonic/gin"
)

func registerRoutes(r *gin.Engine, h *handlers) {
	r.GET("/healthz", h.health)

	v1 := r.Group("/v1")
	v1.GET("/recommendations", h.recommendFromQuery)
	v1.POST("/recommendations", h.recommendFromBody)
}
