package events

import (
	"github.com/hotelops/demand-forecaster/pkg/models"
)

// Publisher wraps the event bus with typed constructors for the events
// the forecaster emits. A nil Publisher is a no-op, so the serving core
// can run without a bus in tests and in the offline trainer.
type Publisher struct {
	bus     *EventBus
	traceID string
}

func NewPublisher(bus *EventBus) *Publisher {
	return &Publisher{bus: bus}
}

func (p *Publisher) WithTraceID(traceID string) *Publisher {
	if p == nil {
		return nil
	}
	return &Publisher{
		bus:     p.bus,
		traceID: traceID,
	}
}

func (p *Publisher) publish(event *models.Event) {
	if p == nil || p.bus == nil {
		return
	}
	if p.traceID != "" {
		event.TraceID = p.traceID
	}
	p.bus.Publish(event)
}

func (p *Publisher) PredictionMade(prediction *models.Prediction) {
	event := models.NewEvent(models.EventTypePredictionMade, prediction.Model, "Prediction made").
		WithData(prediction)
	p.publish(event)
}

func (p *Publisher) ModelTrained(report *models.TrainingReport) {
	event := models.NewEvent(models.EventTypeModelTrained, report.Model, "Model trained").
		WithData(report)
	p.publish(event)
}

func (p *Publisher) ModelReloaded(model models.ModelName, version string) {
	event := models.NewEvent(models.EventTypeModelReloaded, model, "Model artifact reloaded").
		WithData(map[string]interface{}{"version": version})
	p.publish(event)
}

func (p *Publisher) ModelLoadError(model models.ModelName, err error) {
	event := models.NewEvent(models.EventTypeModelLoadError, model, "Model artifact failed to load").
		WithSeverity(models.SeverityWarning).
		WithData(map[string]interface{}{"error": err.Error()})
	p.publish(event)
}

func (p *Publisher) Error(model models.ModelName, message string, err error) {
	event := models.NewEvent(models.EventTypeError, model, message).
		WithSeverity(models.SeverityCritical).
		WithData(map[string]interface{}{"error": err.Error()})
	p.publish(event)
}
