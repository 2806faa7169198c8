package events

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus(nil)

	var received *Event
	callCount := 0
	bus.Subscribe(EventReservationCreated, func(event *Event) error {
		received = event
		callCount++
		return nil
	})

	payload := ReservationEventPayload{ReservationID: 7, SeatID: 1, SeatName: "A1", Status: "reserved"}
	require.NoError(t, bus.PublishJSON(EventReservationCreated, payload))

	assert.Equal(t, 1, callCount)
	require.NotNil(t, received)
	assert.Equal(t, EventReservationCreated, received.Type)
	assert.False(t, received.CreatedAt.IsZero())

	var decoded ReservationEventPayload
	require.NoError(t, received.Decode(&decoded))
	assert.Equal(t, int64(7), decoded.ReservationID)
	assert.Equal(t, "A1", decoded.SeatName)
}

func TestEventBusWildcardAndIsolation(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	bus := NewEventBus(&logger)

	var typed, all int
	bus.Subscribe(EventReportFiled, func(_ *Event) error { typed++; return errors.New("telegram down") })
	bus.SubscribeAll(func(_ *Event) error { all++; return nil })

	require.NoError(t, bus.PublishJSON(EventReportFiled, ReportEventPayload{ReportID: 1, Reason: "x"}))
	require.NoError(t, bus.PublishJSON(EventReservationCancelled, ReservationEventPayload{ReservationID: 2}))

	assert.Equal(t, 1, typed)
	assert.Equal(t, 2, all, "wildcard handler still runs after a failing handler")
	assert.Contains(t, buf.String(), "telegram down")
}

func TestPublishJSONErrors(t *testing.T) {
	var nilBus *EventBus
	assert.NoError(t, nilBus.PublishJSON("x", 1))

	bus := NewEventBus(nil)
	assert.Error(t, bus.PublishJSON("x", make(chan int)))
}
