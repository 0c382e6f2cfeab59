package viewer

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(route *gin.Engine, handler Handler) {
	routes := route.Group("/viewer")
	{
		routes.POST("/open", handler.Open)
		routes.POST("/close", handler.Close)
		routes.GET("/status", handler.Status)
		routes.GET("/frame", handler.Frame)
	}
}
