package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"go.etcd.io/bbolt"

	"unicel/contracts"
)

type ServiceContainer struct {
	Database           *bbolt.DB
	ConversionGraph    contracts.ConversionGraph
	UnitLibrary        contracts.UnitLibrary
	ExpressionExecutor contracts.ExpressionExecutor
	SheetRepository    contracts.SheetRepository
	WebhookDispatcher  contracts.WebhookDispatcher
	ApiController      contracts.ApiController
	Router             *gin.Engine
}

func BuildServiceContainer(configDbPath string) (container ServiceContainer, err error) {
	container.Database, err = bbolt.Open(configDbPath, 0600, nil)
	serializer := NewCellBinarySerializer()
	canonicalizer := NewCanonicalizer()
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "unicel",
	})

	container.ConversionGraph = NewConversionGraph()
	container.UnitLibrary = NewUnitLibrary(container.ConversionGraph)
	container.ExpressionExecutor = NewExpressionExecutor(canonicalizer, container.UnitLibrary, container.ConversionGraph)
	container.WebhookDispatcher = NewWebhookDispatcher(logger)
	container.SheetRepository = NewSheetRepository(
		container.Database, container.ExpressionExecutor, serializer, canonicalizer,
		container.UnitLibrary, container.ConversionGraph, container.WebhookDispatcher,
	)
	container.ApiController = NewApiController(
		container.SheetRepository, container.UnitLibrary, container.ConversionGraph,
		container.WebhookDispatcher, canonicalizer,
	)

	container.Router = SetupRouter(container.ApiController)

	return
}
