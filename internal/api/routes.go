package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(r *gin.Engine, h *Handler, metrics bool) {
	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.POST("/tickets/render", h.renderTicket)
		api.GET("/tickets/:id/qr", h.ticketQR)
		api.GET("/qr", h.qr)
	}
	if metrics {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}
