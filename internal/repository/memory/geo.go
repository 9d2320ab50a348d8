package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"service-dispatch/internal/domain"
)

// GeoIndex is an in-memory retailer directory answering radius + postal code queries.
type GeoIndex struct {
	mu           sync.RWMutex
	retailers    map[string]domain.Retailer
	radiusMeters float64
}

// NewGeoIndex creates an empty GeoIndex.
func NewGeoIndex(radiusMeters float64) *GeoIndex {
	return &GeoIndex{retailers: make(map[string]domain.Retailer), radiusMeters: radiusMeters}
}

// Put registers or replaces a retailer.
func (g *GeoIndex) Put(r domain.Retailer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.retailers[r.ID] = r
}

// FindEligibleRetailers returns active retailers within the radius of p serving postalCode, nearest first.
func (g *GeoIndex) FindEligibleRetailers(_ context.Context, p orb.Point, postalCode string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	type hit struct {
		id   string
		dist float64
	}
	hits := make([]hit, 0)
	for _, r := range g.retailers {
		if !r.IsActive || !r.Serves(postalCode) {
			continue
		}
		d := geo.DistanceHaversine(p, r.ServicePoint)
		if d <= g.radiusMeters {
			hits = append(hits, hit{id: r.ID, dist: d})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist == hits[j].dist {
			return hits[i].id < hits[j].id
		}
		return hits[i].dist < hits[j].dist
	})

	ids := make([]string, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.id)
	}
	return ids, nil
}
