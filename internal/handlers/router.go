package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/venturelens/assessment-engine/internal/utils"
)

// SetupRouter wires the session endpoints. One HTTP request at a time
// per session id is the expected calling pattern; the router does not
// enforce it.
func SetupRouter(sessionHandler *SessionHandler, logger utils.Logger) *gin.Engine {
	router := gin.New()
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", sessionHandler.StartSession)
			sessions.GET("/:id", sessionHandler.GetSession)
			sessions.DELETE("/:id", sessionHandler.EndSession)
			sessions.GET("/:id/worksheet", sessionHandler.GetWorksheet)
			sessions.GET("/:id/export", sessionHandler.ExportWorksheet)
			sessions.POST("/:id/responses", sessionHandler.SubmitResponse)
			sessions.GET("/:id/questions/:question_id/next", sessionHandler.NextQuestion)
		}
	}

	return router
}
