package routes

import (
	"snapfeed/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the HTTP surface onto the engine.
func RegisterRoutes(r *gin.Engine, postHandler *handlers.PostHandler) {
	r.GET("/health", postHandler.Health)

	api := r.Group("/api")
	{
		api.POST("/create-post", postHandler.CreatePost)
		api.GET("/post", postHandler.ListPosts)
	}
}
