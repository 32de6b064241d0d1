package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"unicel/contracts"
)

type ApiController struct {
	SheetRepository   contracts.SheetRepository
	UnitLibrary       contracts.UnitLibrary
	ConversionGraph   contracts.ConversionGraph
	WebhookDispatcher contracts.WebhookDispatcher
	Canonicalizer     contracts.Canonicalizer
}

type CellEndpointParams struct {
	SheetId string `uri:"sheet_id" binding:"required"`
	CellId  string `uri:"cell_id" binding:"required"`
}

type SheetEndpointParams struct {
	SheetId string `uri:"sheet_id" binding:"required"`
}

type TargetUnitRequest struct {
	Unit string `json:"unit"`
}

type UpdateRateRequest struct {
	From   string  `json:"from" binding:"required"`
	To     string  `json:"to" binding:"required"`
	Scale  float64 `json:"scale" binding:"required"`
	Offset float64 `json:"offset"`
}

type SubscribeRequest struct {
	WebhookUrl string `json:"webhook_url"`
}

func NewApiController(
	sheetRepository contracts.SheetRepository, unitLibrary contracts.UnitLibrary,
	conversionGraph contracts.ConversionGraph, webhookDispatcher contracts.WebhookDispatcher,
	canonicalizer contracts.Canonicalizer,
) *ApiController {
	return &ApiController{
		SheetRepository:   sheetRepository,
		UnitLibrary:       unitLibrary,
		ConversionGraph:   conversionGraph,
		WebhookDispatcher: webhookDispatcher,
		Canonicalizer:     canonicalizer,
	}
}

func (api *ApiController) SetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := contracts.SetCellRequest{}
	var response *contracts.Cell

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	if err == nil {
		response, err = api.SheetRepository.SetCell(params.SheetId, params.CellId, request)
	}

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusCreated, response)
	}
}

func (api *ApiController) GetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	var response *contracts.Cell

	err := c.ShouldBindUri(&params)

	if err == nil {
		// the unit query renders a converted view; stored state is
		// never touched
		response, err = api.SheetRepository.GetCellConverted(params.SheetId, params.CellId, c.Query("unit"))
	}

	api.replyCell(c, response, err)
}

func (api *ApiController) DeleteCellAction(c *gin.Context) {
	params := CellEndpointParams{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = api.SheetRepository.DeleteCell(params.SheetId, params.CellId)
	}

	if isNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	} else {
		c.Status(http.StatusNoContent)
	}
}

func (api *ApiController) GetSheetAction(c *gin.Context) {
	params := SheetEndpointParams{}
	response := &contracts.CellList{}

	err := c.ShouldBindUri(&params)

	if err == nil {
		response, err = api.SheetRepository.GetCellList(params.SheetId)
	}

	if isNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func (api *ApiController) SetDisplayUnitAction(c *gin.Context) {
	api.cellUnitAction(c, api.SheetRepository.SetDisplayUnit)
}

func (api *ApiController) ConvertCellAction(c *gin.Context) {
	api.cellUnitAction(c, api.SheetRepository.ConvertCell)
}

func (api *ApiController) RegisterUnitAction(c *gin.Context) {
	definition := contracts.CustomUnit{}

	err := c.ShouldBindJSON(&definition)
	if err == nil {
		err = api.UnitLibrary.RegisterCustomUnit(definition)
	}

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusCreated, definition)
	}
}

// UpdateRateAction is the single entry point for conversion factor
// refreshes, whether they come from a live-rate client or a manual
// override.
func (api *ApiController) UpdateRateAction(c *gin.Context) {
	request := UpdateRateRequest{}
	var from, to *contracts.Unit

	err := c.ShouldBindJSON(&request)
	if err == nil {
		from, err = api.UnitLibrary.Resolve(request.From)
	}
	if err == nil {
		to, err = api.UnitLibrary.Resolve(request.To)
	}
	if err == nil && !from.Vector.Equal(to.Vector) {
		err = fmt.Errorf("%s and %s: %w", request.From, request.To, contracts.IncompatibleUnitsError)
	}

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	api.ConversionGraph.UpsertEdge(request.From, request.To, request.Scale, request.Offset)
	c.JSON(http.StatusOK, request)
}

func (api *ApiController) SubscribeAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := SubscribeRequest{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	api.WebhookDispatcher.SetWebhookUrl(
		api.Canonicalizer.Canonicalize(params.SheetId),
		api.Canonicalizer.Canonicalize(params.CellId),
		request.WebhookUrl,
	)
	c.Status(http.StatusNoContent)
}

func (api *ApiController) cellUnitAction(c *gin.Context, action func(sheetId string, cellId string, unit string) (*contracts.Cell, error)) {
	params := CellEndpointParams{}
	request := TargetUnitRequest{}
	var response *contracts.Cell

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	if err == nil {
		response, err = action(params.SheetId, params.CellId, request.Unit)
	}

	api.replyCell(c, response, err)
}

func (api *ApiController) replyCell(c *gin.Context, response *contracts.Cell, err error) {
	if isNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, contracts.CellNotFoundError) || errors.Is(err, contracts.SheetNotFoundError)
}
