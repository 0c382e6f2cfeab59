package photo

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(route *gin.Engine, handler Handler) {
	collageRoutes := route.Group("/collages/:collageId/photos")
	{
		collageRoutes.GET("", handler.Get)
		collageRoutes.POST("", handler.Upload)
	}

	photoRoutes := route.Group("/photos")
	{
		photoRoutes.PATCH("/:photoId", handler.UpdateUrl)
		photoRoutes.DELETE("/:photoId", handler.Delete)
	}
}
