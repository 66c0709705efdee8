package controllers

import (
	"MedicAid/handlers"
	"MedicAid/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupRecordRoutes registers the report, trend, chat, and specialist
// routes. Everything here operates on the session's patient record.
func SetupRecordRoutes(
	router *gin.Engine,
	reportHandler *handlers.ReportHandler,
	trendHandler *handlers.TrendHandler,
	chatHandler *handlers.ChatHandler,
	specialistHandler *handlers.SpecialistHandler,
) {
	group := router.Group("/").Use(middlewares.SessionAuthMiddleware())
	{
		group.POST("/reports/analyze", reportHandler.AnalyzeReports)

		group.GET("/trends/markers", trendHandler.GetTrackableMarkers)
		group.GET("/trends/markers/:marker_key", trendHandler.GetMarkerSeries)
		group.GET("/history/:analysis_id/shift", trendHandler.GetMarkerShift)

		group.POST("/chat/sessions", chatHandler.CreateSession)
		group.POST("/chat/sessions/:session_id/messages", chatHandler.SendMessage)
		group.DELETE("/chat/sessions/:session_id", chatHandler.CloseSession)

		group.POST("/specialists/search", specialistHandler.Search)
	}
}
