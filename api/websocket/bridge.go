package websocket

import (
	"context"

	"github.com/hotelops/demand-forecaster/internal/logger"
	"github.com/hotelops/demand-forecaster/pkg/models"
)

// EventBridge forwards forecaster events to WebSocket clients.
type EventBridge struct {
	hub        *Hub
	eventsChan <-chan *models.Event
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewEventBridge(hub *Hub, eventsChan <-chan *models.Event) *EventBridge {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventBridge{
		hub:        hub,
		eventsChan: eventsChan,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (b *EventBridge) Start() {
	go b.run()
	logger.Info("WebSocket event bridge started")
}

func (b *EventBridge) Stop() {
	b.cancel()
	logger.Info("WebSocket event bridge stopped")
}

func (b *EventBridge) run() {
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-b.eventsChan:
			if !ok {
				logger.Info("Event channel closed, stopping bridge")
				return
			}
			b.forwardEvent(event)
		}
	}
}

func (b *EventBridge) forwardEvent(event *models.Event) {
	var msgType MessageType
	switch event.Type {
	case models.EventTypePredictionMade:
		msgType = MessageTypePrediction
	case models.EventTypeModelReloaded:
		msgType = MessageTypeModelReloaded
	case models.EventTypeModelTrained:
		msgType = MessageTypeModelTrained
	default:
		msgType = MessageTypeAlert
	}

	msg := NewMessage(msgType, string(event.Model), event.Data)
	msg.Timestamp = event.Timestamp
	b.hub.BroadcastToModel(string(event.Model), msg.JSON())
}
