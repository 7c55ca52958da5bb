package routes

import (
	"designmecha-mes/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes initializes all application routes. Every request passes the
// operator middleware so lifecycle events can be attributed.
func SetupRoutes(r *gin.Engine) {
	root := r.Group("/")
	root.Use(middleware.OperatorMiddleware())
	{
		RegisterAPIRoutes(root)
	}
}
