package main

import (
	"bytes"
	"net/http"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/charmbracelet/log"

	"unicel/contracts"
)

const WebhookWorkersCount = 5

type SheetWebhooks map[string]string

type WebhookSendCommand struct {
	Webhook string
	Cell    *contracts.Cell
}

// WebhookDispatcher pushes recalculated cells to subscribed urls through
// a small worker pool. Delivery is best effort: a failed post is logged
// and dropped.
type WebhookDispatcher struct {
	queue    chan WebhookSendCommand
	webhooks map[string]SheetWebhooks
	client   *http.Client
	logger   *log.Logger
}

func NewWebhookDispatcher(logger *log.Logger) *WebhookDispatcher {
	return &WebhookDispatcher{
		queue:    make(chan WebhookSendCommand, 20),
		webhooks: map[string]SheetWebhooks{},
		client: &http.Client{
			Timeout: time.Second * 4,
		},
		logger: logger,
	}
}

func (manager *WebhookDispatcher) SetWebhookUrl(canonicalSheetId string, canonicalCellId string, webhookUrl string) {
	if _, ok := manager.webhooks[canonicalSheetId]; !ok {
		manager.webhooks[canonicalSheetId] = SheetWebhooks{}
	}

	if webhookUrl == "" {
		delete(manager.webhooks[canonicalSheetId], canonicalCellId)
	} else {
		manager.webhooks[canonicalSheetId][canonicalCellId] = webhookUrl
	}
}

func (manager *WebhookDispatcher) GetWebhookUrl(canonicalSheetId string, canonicalCellId string) string {
	if _, ok := manager.webhooks[canonicalSheetId]; !ok {
		return ""
	}

	return manager.webhooks[canonicalSheetId][canonicalCellId]
}

func (manager *WebhookDispatcher) Notify(canonicalSheetId string, cells []*contracts.Cell) {
	sheetWebhooks, ok := manager.webhooks[canonicalSheetId]
	if !ok {
		return
	}

	for _, cell := range cells {
		if webhook, ok := sheetWebhooks[cell.CanonicalKey]; ok {
			manager.queue <- WebhookSendCommand{Webhook: webhook, Cell: cell}
		}
	}
}

func (manager *WebhookDispatcher) Start() {
	for i := 0; i < WebhookWorkersCount; i++ {
		go manager.worker()
	}
}

func (manager *WebhookDispatcher) Close() {
	close(manager.queue)
}

func (manager *WebhookDispatcher) worker() {
	for command := range manager.queue {
		manager.send(command)
	}
}

func (manager *WebhookDispatcher) send(command WebhookSendCommand) {
	payload, err := json.Marshal(command.Cell)
	if err != nil {
		manager.logger.Error("webhook marshal failed", "cell", command.Cell.CanonicalKey, "err", err)
		return
	}

	response, err := manager.client.Post(command.Webhook, "application/json", bytes.NewReader(payload))
	if err != nil {
		manager.logger.Warn("webhook delivery failed", "url", command.Webhook, "err", err)
		return
	}
	_ = response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		manager.logger.Warn("webhook rejected", "url", command.Webhook, "status", response.Status)
	}
}
