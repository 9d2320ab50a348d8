//go:generate mockgen -source=contracts.go -destination=dispatch_mocks_test.go -package=dispatch_test

package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"service-dispatch/internal/domain"
)

// BroadcastStore persists broadcasts and performs the conditional claim.
type BroadcastStore interface {
	Insert(ctx context.Context, b *domain.Broadcast) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Broadcast, error)
	ListPendingForRetailer(ctx context.Context, retailerID string, now time.Time) ([]domain.Broadcast, error)
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]domain.Broadcast, error)
	ClaimOrNoop(ctx context.Context, id uuid.UUID, retailerID string, now time.Time) (domain.ClaimResult, *domain.Broadcast, error)
	RejectOrNoop(ctx context.Context, id uuid.UUID, retailerID string, now time.Time) (domain.ClaimResult, *domain.Broadcast, error)
}

// Catalog resolves authoritative unit prices.
type Catalog interface {
	ResolvePrices(ctx context.Context, ids []string) (map[string]domain.Money, error)
}

// GeoIndex finds retailers that may claim a broadcast.
type GeoIndex interface {
	FindEligibleRetailers(ctx context.Context, p orb.Point, postalCode string) ([]string, error)
}

// Assigner reserves a delivery agent for a freshly accepted broadcast.
type Assigner interface {
	AssignToBroadcast(ctx context.Context, b domain.Broadcast) (*domain.DeliveryAgent, error)
}
