package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelops/demand-forecaster/pkg/models"
)

func receive(t *testing.T, ch <-chan *models.Event) *models.Event {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestEventBus_PublishSubscribe(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch := bus.Subscribe(models.EventTypePredictionMade)

	bus.Publish(models.NewEvent(models.EventTypePredictionMade, models.ModelCheckins, "Prediction made"))

	event := receive(t, ch)
	assert.Equal(t, models.EventTypePredictionMade, event.Type)
	assert.Equal(t, models.ModelCheckins, event.Model)
}

func TestEventBus_SubscribeAll(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch := bus.SubscribeAll()

	bus.Publish(models.NewEvent(models.EventTypeModelReloaded, models.ModelDemand, "Model artifact reloaded"))
	bus.Publish(models.NewEvent(models.EventTypeError, models.ModelDemand, "boom"))

	assert.Equal(t, models.EventTypeModelReloaded, receive(t, ch).Type)
	assert.Equal(t, models.EventTypeError, receive(t, ch).Type)
}

func TestEventBus_TypeFiltering(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch := bus.Subscribe(models.EventTypeModelTrained)

	bus.Publish(models.NewEvent(models.EventTypePredictionMade, models.ModelCheckins, "Prediction made"))

	select {
	case event := <-ch:
		t.Fatalf("unexpected event: %v", event.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEventBus_PublishAfterClose(t *testing.T) {
	bus := NewEventBus(10)
	ch := bus.SubscribeAll()
	bus.Close()

	// Must not panic, and the channel must be closed.
	bus.Publish(models.NewEvent(models.EventTypeError, models.ModelCheckins, "late"))

	_, open := <-ch
	assert.False(t, open)
}

func TestPublisher_NilSafe(t *testing.T) {
	var p *Publisher
	assert.NotPanics(t, func() {
		p.PredictionMade(models.NewPrediction(models.ModelCheckins, 1, "v1"))
		p.ModelReloaded(models.ModelDemand, "v2")
	})

	p = NewPublisher(nil)
	assert.NotPanics(t, func() {
		p.ModelTrained(&models.TrainingReport{Model: models.ModelDemand})
	})
}

func TestPublisher_ForwardsToBus(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()
	ch := bus.SubscribeAll()

	p := NewPublisher(bus).WithTraceID("trace-1")
	p.PredictionMade(models.NewPrediction(models.ModelCheckins, 12, "v1"))

	event := receive(t, ch)
	require.Equal(t, models.EventTypePredictionMade, event.Type)
	assert.Equal(t, "trace-1", event.TraceID)
	assert.Equal(t, models.ModelCheckins, event.Model)
}
