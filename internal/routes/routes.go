package routes

import (
	"farmwork_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every handler group under /api/v1.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.Posting.RegisterRoutes(api)
		appHandlers.Manage.RegisterRoutes(api)
		appHandlers.Checkout.RegisterRoutes(api)
		appHandlers.Alert.RegisterRoutes(api)
	}
}
