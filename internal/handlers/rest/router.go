package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/common/uuid"
	"go.uber.org/zap"
)

// NewRouter wires the middleware and routes onto a fresh gin engine
func NewRouter(h *Handler, generator uuid.UUID, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestID(generator))
	r.Use(Logger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		sessions := v1.Group("/sessions")
		{
			sessions.GET("", h.ListSessions)
			sessions.GET("/map", h.MapSessions)
			sessions.POST("", h.CreateSession)
			sessions.GET("/:id", h.GetSession)
			sessions.POST("/:id/join", h.JoinSession)
			sessions.PATCH("/:id/location", h.EditLocation)
			sessions.DELETE("/:id", h.DeleteSession)
		}
	}

	return r
}
