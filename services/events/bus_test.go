package events

import (
	"testing"
	"time"

	"salonbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversInOrder(t *testing.T) {
	bus := NewBus()
	var order []string
	bus.Subscribe(func(evt models.Event) { order = append(order, "first:"+evt.ID) })
	bus.Subscribe(func(evt models.Event) { order = append(order, "second:"+evt.ID) })

	bus.Publish(Upserted(models.KindService, "s1", nil))
	bus.Publish(Deleted(models.KindService, "s1", nil))

	assert.Equal(t, []string{"first:s1", "second:s1", "first:s1", "second:s1"}, order)
}

func TestBusStampsTime(t *testing.T) {
	bus := NewBus()
	fixed := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	bus.now = func() time.Time { return fixed }

	var got models.Event
	bus.Subscribe(func(evt models.Event) { got = evt })

	bus.Publish(Upserted(models.KindClient, "c1", models.Client{ID: "c1"}))
	assert.Equal(t, fixed, got.At)
	assert.Equal(t, models.ActionUpsert, got.Action)
	require.IsType(t, models.Client{}, got.Payload)

	earlier := fixed.Add(-time.Hour)
	bus.Publish(models.Event{Kind: models.KindClient, ID: "c1", At: earlier})
	assert.Equal(t, earlier, got.At)
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus()
	calls := 0
	unsubscribe := bus.Subscribe(func(models.Event) { calls++ })

	bus.Publish(Upserted(models.KindClient, "c1", nil))
	unsubscribe()
	bus.Publish(Upserted(models.KindClient, "c1", nil))

	assert.Equal(t, 1, calls)
}
