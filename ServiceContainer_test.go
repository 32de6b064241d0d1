package main

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.etcd.io/bbolt"
)

func TestBuildServiceContainer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	f, err := os.CreateTemp("", "db_*.db")
	assert.NoError(t, err)
	defer os.Remove(f.Name())

	serviceContainer, err := BuildServiceContainer(f.Name())

	assert.NoError(t, err)

	// check database
	assert.NotNil(t, serviceContainer.Database)
	assert.IsType(t, &bbolt.DB{}, serviceContainer.Database)
	assert.NoError(t, serviceContainer.Database.Close())

	// check conversion graph and unit library
	assert.NotNil(t, serviceContainer.ConversionGraph)
	assert.IsType(t, &ConversionGraph{}, serviceContainer.ConversionGraph)

	assert.NotNil(t, serviceContainer.UnitLibrary)
	assert.IsType(t, &UnitLibrary{}, serviceContainer.UnitLibrary)

	unitLibrary := serviceContainer.UnitLibrary.(*UnitLibrary)
	assert.Equal(t, serviceContainer.ConversionGraph, unitLibrary.graph)

	// check expression executor
	assert.NotNil(t, serviceContainer.ExpressionExecutor)
	assert.IsType(t, &ExpressionExecutor{}, serviceContainer.ExpressionExecutor)

	expressionExecutor := serviceContainer.ExpressionExecutor.(*ExpressionExecutor)
	assert.IsType(t, &Canonicalizer{}, expressionExecutor.canonicalizer)
	assert.Equal(t, serviceContainer.UnitLibrary, expressionExecutor.library)
	assert.Equal(t, serviceContainer.ConversionGraph, expressionExecutor.graph)

	// check webhook dispatcher
	assert.NotNil(t, serviceContainer.WebhookDispatcher)
	assert.IsType(t, &WebhookDispatcher{}, serviceContainer.WebhookDispatcher)

	// check sheet repository
	assert.NotNil(t, serviceContainer.SheetRepository)
	assert.IsType(t, &SheetRepository{}, serviceContainer.SheetRepository)

	sheetRepository := serviceContainer.SheetRepository.(*SheetRepository)
	assert.NotNil(t, sheetRepository.db)
	assert.Equal(t, serviceContainer.Database, sheetRepository.db)
	assert.Equal(t, serviceContainer.ExpressionExecutor, sheetRepository.executor)
	assert.Equal(t, serviceContainer.UnitLibrary, sheetRepository.library)
	assert.Equal(t, serviceContainer.ConversionGraph, sheetRepository.graph)
	assert.Equal(t, serviceContainer.WebhookDispatcher, sheetRepository.webhookDispatcher)

	assert.NotNil(t, sheetRepository.serializer)
	assert.IsType(t, &CellBinarySerializer{}, sheetRepository.serializer)

	assert.NotNil(t, sheetRepository.canonicalizer)
	assert.IsType(t, &Canonicalizer{}, sheetRepository.canonicalizer)
	assert.Equal(t, expressionExecutor.canonicalizer, sheetRepository.canonicalizer)

	// check api controller
	assert.NotNil(t, serviceContainer.ApiController)
	assert.IsType(t, &ApiController{}, serviceContainer.ApiController)

	apiController := serviceContainer.ApiController.(*ApiController)
	assert.Equal(t, serviceContainer.SheetRepository, apiController.SheetRepository)
	assert.Equal(t, serviceContainer.UnitLibrary, apiController.UnitLibrary)
	assert.Equal(t, serviceContainer.ConversionGraph, apiController.ConversionGraph)
	assert.Equal(t, serviceContainer.WebhookDispatcher, apiController.WebhookDispatcher)

	// check router
	assert.NotNil(t, serviceContainer.Router)
	assert.IsType(t, &gin.Engine{}, serviceContainer.Router)

	// check routes
	routes := serviceContainer.Router.Routes()
	assert.NotNil(t, routes)
	// 9 api routes + health check
	assert.GreaterOrEqual(t, len(routes), 10)
}
