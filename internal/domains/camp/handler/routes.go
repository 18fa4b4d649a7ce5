package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the camp, talk and speaker routes on rg.
func RegisterRoutes(rg *gin.RouterGroup, camps *CampHandler, talks *TalkHandler, speakers *SpeakerHandler) {
	campRoutes := rg.Group("/camps")
	{
		campRoutes.GET("", camps.List)
		campRoutes.GET("/search", camps.SearchByDate)
		campRoutes.POST("", camps.Create)
		campRoutes.GET("/:moniker", camps.Get)
		campRoutes.PUT("/:moniker", camps.Update)
		campRoutes.DELETE("/:moniker", camps.Delete)

		campRoutes.GET("/:moniker/talks", talks.List)
		campRoutes.POST("/:moniker/talks", talks.Create)
		campRoutes.GET("/:moniker/talks/:id", talks.Get)
		campRoutes.PUT("/:moniker/talks/:id", talks.Update)
		campRoutes.DELETE("/:moniker/talks/:id", talks.Delete)
	}

	speakerRoutes := rg.Group("/speakers")
	{
		speakerRoutes.POST("", speakers.Create)
		speakerRoutes.GET("/:id", speakers.Get)
	}
}
