package collage

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(route *gin.Engine, handler Handler) {
	routes := route.Group("/collages")
	{
		routes.GET("", handler.Get)
		routes.POST("", handler.Create)
		routes.GET("/code/:code", handler.GetByCode)
		routes.GET("/:collageId", handler.GetByUuid)
		routes.DELETE("/:collageId", handler.Delete)
		routes.PATCH("/:collageId/settings", handler.UpdateSettings)
		routes.POST("/:collageId/export", handler.Export)
	}
}
