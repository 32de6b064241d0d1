package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"unicel/contracts"
)

const ApiVersion = "v1"

const subscribePath = "subscribe"
const displayUnitPath = "displayUnit"
const convertPath = "convert"

func SetupRouter(controller contracts.ApiController) *gin.Engine {
	router := gin.New()

	apiRouterGroup := router.Group("/api/" + ApiVersion)
	apiRouterGroup.POST("/units", controller.RegisterUnitAction)
	apiRouterGroup.POST("/rates", controller.UpdateRateAction)

	apiRouterGroup.POST("/:sheet_id/:cell_id/"+subscribePath, controller.SubscribeAction)
	apiRouterGroup.POST("/:sheet_id/:cell_id/"+displayUnitPath, controller.SetDisplayUnitAction)
	apiRouterGroup.POST("/:sheet_id/:cell_id/"+convertPath, controller.ConvertCellAction)

	apiRouterGroup.POST("/:sheet_id/:cell_id", controller.SetCellAction)
	apiRouterGroup.GET("/:sheet_id/:cell_id", controller.GetCellAction)
	apiRouterGroup.DELETE("/:sheet_id/:cell_id", controller.DeleteCellAction)
	apiRouterGroup.GET("/:sheet_id", controller.GetSheetAction)

	router.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "health")
	})

	return router
}
