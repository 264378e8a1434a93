package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler, authMW gin.HandlerFunc) {
	// Health check
	router.GET("/health", handler.HealthCheck)

	// Authentication
	auth := router.Group("/auth")
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
	}

	// Browsing the storage tree
	router.GET("/navigate/*path", authMW, handler.Navigate)
	router.GET("/download", authMW, handler.DownloadPath)

	// API v1 routes
	v1 := router.Group("/api/v1", authMW)
	{
		v1.POST("/files", handler.UploadFiles)
		v1.GET("/files", handler.ListUserFiles)
		v1.GET("/files/:file_id", handler.GetFileStatus)
		v1.GET("/files/:file_id/content", handler.DownloadUserFile)
	}
}
