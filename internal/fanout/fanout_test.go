package fanout_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/fanout"
	testlog "service-dispatch/internal/testutil"
)

func sampleBroadcast() domain.Broadcast {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	return domain.Broadcast{
		ID:         uuid.MustParse("7b0e7d2e-3f34-4f6a-9d1b-5f0c9d7f4c11"),
		CustomerID: "c1",
		Items:      []domain.Item{{ProductID: "p1", Quantity: 2, UnitPrice: 5000}},
		Origin:     orb.Point{73.85, 18.52},
		DeliveryAddress: domain.Address{
			Street: "1 Main", City: "Pune", State: "MH", PostalCode: "411001", ContactNumber: "9876543210",
		},
		PaymentMethod:     domain.PaymentWallet,
		Status:            domain.StatusPending,
		Subtotal:          10000,
		GrandTotal:        12500,
		CreatedAt:         now,
		ExpiryTime:        now.Add(15 * time.Minute),
		EligibleRetailers: []string{"r1"},
	}
}

func TestNewEvent_CarriesSnapshot(t *testing.T) {
	t.Parallel()

	b := sampleBroadcast()
	ev := fanout.NewEvent(fanout.EventBroadcastCreated, b, b.CreatedAt).
		WithAgent(&domain.DeliveryAgent{ID: "a1", RetailerID: "r1", Rating: 4.5})

	raw, err := ev.Encode()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, "broadcast.created", got["type"])
	snap := got["broadcast"].(map[string]any)
	assert.Equal(t, b.ID.String(), snap["id"])
	assert.Equal(t, "pending", snap["status"])
	assert.EqualValues(t, 12500, snap["grand_total_cents"])
	assert.Equal(t, "411001", snap["delivery_address"].(map[string]any)["postal_code"])
	assert.NotContains(t, snap, "eligible_retailers")
	assert.Len(t, snap["items"], 1)
	assert.Equal(t, "a1", got["agent"].(map[string]any)["id"])
}

func TestChannels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "retailer:r1", fanout.RetailerChannel("r1"))
	assert.Equal(t, "customer:c1", fanout.CustomerChannel("c1"))
	assert.Equal(t, "agent:a1", fanout.AgentChannel("a1"))
}

func TestMulti_JoinsErrors(t *testing.T) {
	t.Parallel()

	ok := &fanout.Recorder{}
	bad := &fanout.Recorder{Err: errors.New("down")}
	m := fanout.Multi{bad, ok}

	ev := fanout.NewEvent(fanout.EventStatusChanged, sampleBroadcast(), time.Now())
	err := m.Push(context.Background(), "customer:c1", ev)
	require.Error(t, err)
	require.Len(t, ok.To("customer:c1"), 1, "later transports still receive the event")
	require.NoError(t, fanout.Nop{}.Push(context.Background(), "x", ev))
}

func TestAsync_DeliversAndDrainsOnClose(t *testing.T) {
	t.Parallel()

	rec := &fanout.Recorder{}
	a := fanout.NewAsync(rec, 2, 64, testlog.New().Logger(), nil)

	ev := fanout.NewEvent(fanout.EventBroadcastCreated, sampleBroadcast(), time.Now())
	for i := 0; i < 50; i++ {
		require.NoError(t, a.Push(context.Background(), "retailer:r1", ev))
	}
	require.NoError(t, a.Close())
	require.Len(t, rec.Deliveries(), 50)

	require.ErrorIs(t, a.Push(context.Background(), "retailer:r1", ev), fanout.ErrClosed)
	require.NoError(t, a.Close())
}

type blocking struct {
	release chan struct{}
	started chan struct{}
	once    sync.Once
}

func (b *blocking) Push(context.Context, string, fanout.Event) error {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return nil
}

func TestAsync_DropsWhenFull(t *testing.T) {
	t.Parallel()

	logs := testlog.New()
	failures := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_fanout_failures_total"})
	next := &blocking{release: make(chan struct{}), started: make(chan struct{})}
	a := fanout.NewAsync(next, 1, 1, logs.Logger(), failures)

	ev := fanout.NewEvent(fanout.EventBroadcastCreated, sampleBroadcast(), time.Now())
	require.NoError(t, a.Push(context.Background(), "retailer:r1", ev))
	<-next.started // worker holds the first event
	require.NoError(t, a.Push(context.Background(), "retailer:r2", ev))
	err := a.Push(context.Background(), "retailer:r3", ev)
	require.ErrorIs(t, err, fanout.ErrQueueFull)

	close(next.release)
	require.NoError(t, a.Close())
	require.Equal(t, 1.0, promtest.ToFloat64(failures))
	require.True(t, logs.Has("warn", "fanout push failed"))
}

func TestAsync_LogsTransportFailure(t *testing.T) {
	t.Parallel()

	logs := testlog.New()
	a := fanout.NewAsync(&fanout.Recorder{Err: errors.New("redis down")}, 1, 4, logs.Logger(), nil)
	require.NoError(t, a.Push(context.Background(), "customer:c1",
		fanout.NewEvent(fanout.EventBroadcastAccepted, sampleBroadcast(), time.Now())))
	require.NoError(t, a.Close())

	entries := logs.Entries()
	require.Len(t, entries, 1)
	v, ok := entries[0].Field("err")
	require.True(t, ok)
	require.Equal(t, "redis down", v)
}
