package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/repository/memory"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newBroadcast(eligible ...string) *domain.Broadcast {
	return &domain.Broadcast{
		ID:         uuid.New(),
		CustomerID: "cust-1",
		Items:      []domain.Item{{ProductID: "p1", Quantity: 1, UnitPrice: 100}},
		Origin:     orb.Point{73.85, 18.52},
		DeliveryAddress: domain.Address{
			Street: "1 Main", City: "Pune", State: "MH", PostalCode: "411001", ContactNumber: "9876543210",
		},
		PaymentMethod:     domain.PaymentCard,
		CreatedAt:         t0,
		ExpiryTime:        t0.Add(15 * time.Minute),
		EligibleRetailers: eligible,
	}
}

func insert(t *testing.T, s *memory.Store, b *domain.Broadcast) {
	t.Helper()
	_, err := s.Insert(context.Background(), b)
	require.NoError(t, err)
}

func TestStore_ClaimSingleWinner(t *testing.T) {
	t.Parallel()

	for _, n := range []int{2, 8, 64} {
		n := n
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			t.Parallel()

			s := memory.NewStore()
			ids := make([]string, n)
			for i := range ids {
				ids[i] = fmt.Sprintf("r%d", i)
			}
			b := newBroadcast(ids...)
			insert(t, s, b)

			results := make([]domain.ClaimResult, n)
			var wg sync.WaitGroup
			start := make(chan struct{})
			for i := range ids {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					<-start
					res, _, err := s.ClaimOrNoop(context.Background(), b.ID, ids[i], t0.Add(time.Minute))
					assert.NoError(t, err)
					results[i] = res
				}(i)
			}
			close(start)
			wg.Wait()

			counts := map[domain.ClaimResult]int{}
			winner := -1
			for i, r := range results {
				counts[r]++
				if r == domain.Claimed {
					winner = i
				}
			}
			require.Equal(t, 1, counts[domain.Claimed])
			require.Equal(t, n-1, counts[domain.ClaimAlreadyClaimed])

			got, err := s.Get(context.Background(), b.ID)
			require.NoError(t, err)
			assert.Equal(t, domain.StatusAccepted, got.Status)
			assert.Equal(t, ids[winner], got.RetailerID)
			require.NotNil(t, got.AcceptedAt)
		})
	}
}

func TestStore_ExpiryPrecedence(t *testing.T) {
	t.Parallel()

	s := memory.NewStore()
	b := newBroadcast("r1")
	insert(t, s, b)
	ctx := context.Background()
	now := b.ExpiryTime.Add(time.Second)

	res, _, err := s.ClaimOrNoop(ctx, b.ID, "r1", now)
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimExpired, res)

	// Exactly at expiry the window is closed.
	res, _, err = s.ClaimOrNoop(ctx, b.ID, "r1", b.ExpiryTime)
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimExpired, res)

	expired, err := s.ExpireOverdue(ctx, now)
	require.NoError(t, err)
	require.Len(t, expired, 1)

	got, err := s.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExpired, got.Status)
	assert.Empty(t, got.RetailerID)
}

func TestStore_ExpireOverdueIdempotent(t *testing.T) {
	t.Parallel()

	s := memory.NewStore()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		insert(t, s, newBroadcast("r1"))
	}
	fresh := newBroadcast("r1")
	fresh.ExpiryTime = t0.Add(time.Hour)
	insert(t, s, fresh)

	now := t0.Add(16 * time.Minute)
	first, err := s.ExpireOverdue(ctx, now)
	require.NoError(t, err)
	assert.Len(t, first, 3)

	second, err := s.ExpireOverdue(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, second)

	got, err := s.Get(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
}

func TestStore_ClaimRacesSweep(t *testing.T) {
	t.Parallel()

	s := memory.NewStore()
	b := newBroadcast("r1")
	insert(t, s, b)
	ctx := context.Background()
	now := b.ExpiryTime.Add(-time.Nanosecond)

	var (
		wg      sync.WaitGroup
		claimed domain.ClaimResult
		swept   []domain.Broadcast
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		claimed, _, _ = s.ClaimOrNoop(ctx, b.ID, "r1", now)
	}()
	go func() {
		defer wg.Done()
		swept, _ = s.ExpireOverdue(ctx, b.ExpiryTime)
	}()
	wg.Wait()

	got, err := s.Get(ctx, b.ID)
	require.NoError(t, err)
	if claimed == domain.Claimed {
		assert.Empty(t, swept)
		assert.Equal(t, domain.StatusAccepted, got.Status)
	} else {
		assert.Len(t, swept, 1)
		assert.Equal(t, domain.StatusExpired, got.Status)
	}
}

func TestStore_UpdateStatus(t *testing.T) {
	t.Parallel()

	s := memory.NewStore()
	ctx := context.Background()
	b := newBroadcast("r1")
	insert(t, s, b)

	res, _, err := s.UpdateStatus(ctx, b.ID, domain.StatusPending, domain.StatusAccepted, t0)
	require.ErrorIs(t, err, apperr.ErrInvalid)
	assert.Equal(t, domain.UpdateConflict, res)

	claim, _, err := s.ClaimOrNoop(ctx, b.ID, "r1", t0)
	require.NoError(t, err)
	require.Equal(t, domain.Claimed, claim)

	res, _, err = s.UpdateStatus(ctx, b.ID, domain.StatusPreparing, domain.StatusShipped, t0)
	require.NoError(t, err)
	assert.Equal(t, domain.UpdateConflict, res)

	for _, step := range [][2]domain.Status{
		{domain.StatusAccepted, domain.StatusPreparing},
		{domain.StatusPreparing, domain.StatusShipped},
		{domain.StatusShipped, domain.StatusDelivered},
	} {
		res, got, err := s.UpdateStatus(ctx, b.ID, step[0], step[1], t0)
		require.NoError(t, err)
		require.Equal(t, domain.Updated, res)
		require.Equal(t, step[1], got.Status)
	}
	got, err := s.Get(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DeliveredAt)
	assert.Equal(t, "r1", got.RetailerID)

	res, _, err = s.UpdateStatus(ctx, uuid.New(), domain.StatusShipped, domain.StatusDelivered, t0)
	require.NoError(t, err)
	assert.Equal(t, domain.UpdateNotFound, res)
}

func TestStore_CancelKeepsInvariant(t *testing.T) {
	t.Parallel()

	s := memory.NewStore()
	ctx := context.Background()
	b := newBroadcast("r1")
	insert(t, s, b)
	_, _, err := s.ClaimOrNoop(ctx, b.ID, "r1", t0)
	require.NoError(t, err)

	res, got, err := s.UpdateStatus(ctx, b.ID, domain.StatusAccepted, domain.StatusCancelled, t0)
	require.NoError(t, err)
	require.Equal(t, domain.Updated, res)
	assert.Empty(t, got.RetailerID)
	assert.Equal(t, got.Status.Claimed(), got.RetailerID != "")
}

func TestStore_InsertValidates(t *testing.T) {
	t.Parallel()

	s := memory.NewStore()
	b := newBroadcast()
	b.DeliveryAddress.ContactNumber = ""
	_, err := s.Insert(context.Background(), b)
	require.ErrorIs(t, err, apperr.ErrInvalid)

	b = newBroadcast()
	b.ExpiryTime = b.CreatedAt
	_, err = s.Insert(context.Background(), b)
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestStore_Lists(t *testing.T) {
	t.Parallel()

	s := memory.NewStore()
	ctx := context.Background()
	a := newBroadcast("r1")
	insert(t, s, a)
	b := newBroadcast("r2")
	b.CreatedAt = t0.Add(time.Minute)
	b.ExpiryTime = b.CreatedAt.Add(15 * time.Minute)
	insert(t, s, b)

	pending, err := s.ListPendingForRetailer(ctx, "r1", t0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, a.ID, pending[0].ID)

	mine, err := s.ListByCustomer(ctx, "cust-1", 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, b.ID, mine[0].ID)
}

func TestStore_ReserveNoDoubleBooking(t *testing.T) {
	t.Parallel()

	s := memory.NewStore()
	ctx := context.Background()
	s.PutAgent(domain.DeliveryAgent{ID: "a1", RetailerID: "r1", IsAvailable: true, Rating: 4.0})
	s.PutAgent(domain.DeliveryAgent{ID: "a2", RetailerID: "r1", IsAvailable: true, Rating: 4.8})
	s.PutAgent(domain.DeliveryAgent{ID: "a3", RetailerID: "r2", IsAvailable: true, Rating: 5.0})

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		got []string
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := s.Reserve(ctx, "r1")
			if err != nil {
				assert.ErrorIs(t, err, apperr.ErrNoneAvailable)
				return
			}
			mu.Lock()
			got = append(got, a.ID)
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.ElementsMatch(t, []string{"a1", "a2"}, got)

	ok, err := s.Release(ctx, "a2")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Release(ctx, "a2")
	require.NoError(t, err)
	assert.False(t, ok)

	a, err := s.Reserve(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "a2", a.ID)
}

func TestGeoIndex_RadiusAndPostalCode(t *testing.T) {
	t.Parallel()

	g := memory.NewGeoIndex(5000)
	origin := orb.Point{73.8567, 18.5204}
	g.Put(domain.Retailer{ID: "near", ServicePoint: orb.Point{73.8662, 18.5204}, ServiceAreas: []string{"411001"}, IsActive: true})
	g.Put(domain.Retailer{ID: "mid", ServicePoint: orb.Point{73.8851, 18.5204}, ServiceAreas: []string{"411001"}, IsActive: true})
	g.Put(domain.Retailer{ID: "far", ServicePoint: orb.Point{73.9703, 18.5204}, ServiceAreas: []string{"411001"}, IsActive: true})
	g.Put(domain.Retailer{ID: "zip", ServicePoint: origin, ServiceAreas: []string{"411002"}, IsActive: true})
	g.Put(domain.Retailer{ID: "off", ServicePoint: origin, ServiceAreas: []string{"411001"}, IsActive: false})

	ids, err := g.FindEligibleRetailers(context.Background(), origin, "411001")
	require.NoError(t, err)
	assert.Equal(t, []string{"near", "mid"}, ids)
}

func TestCatalog_ResolvePrices(t *testing.T) {
	t.Parallel()

	c := memory.NewCatalog(map[string]domain.Money{"p1": 100})
	prices, err := c.ResolvePrices(context.Background(), []string{"p1"})
	require.NoError(t, err)
	assert.Equal(t, domain.Money(100), prices["p1"])

	_, err = c.ResolvePrices(context.Background(), []string{"p1", "x", "x", "y"})
	var pu *apperr.ProductUnavailableError
	require.ErrorAs(t, err, &pu)
	assert.Equal(t, []string{"x", "y"}, pu.IDs)
	assert.ErrorIs(t, err, apperr.ErrProductUnavailable)
}
