package contracts

import "github.com/gin-gonic/gin"

type ApiController interface {
	SetCellAction(c *gin.Context)
	GetCellAction(c *gin.Context)
	DeleteCellAction(c *gin.Context)
	GetSheetAction(c *gin.Context)
	SetDisplayUnitAction(c *gin.Context)
	ConvertCellAction(c *gin.Context)
	RegisterUnitAction(c *gin.Context)
	UpdateRateAction(c *gin.Context)
	SubscribeAction(c *gin.Context)
}
