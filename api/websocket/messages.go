package websocket

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	MessageTypePrediction    MessageType = "prediction"
	MessageTypeModelReloaded MessageType = "model_reloaded"
	MessageTypeModelTrained  MessageType = "model_trained"
	MessageTypeAlert         MessageType = "alert"
)

type OutgoingMessage struct {
	Type      MessageType `json:"type"`
	Model     string      `json:"model,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewMessage(msgType MessageType, model string, data interface{}) *OutgoingMessage {
	return &OutgoingMessage{
		Type:      msgType,
		Model:     model,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func (m *OutgoingMessage) JSON() []byte {
	data, _ := json.Marshal(m)
	return data
}
