package memory

import (
	"context"
	"sync"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
)

// Catalog is an in-memory price list.
type Catalog struct {
	mu     sync.RWMutex
	prices map[string]domain.Money
}

// NewCatalog creates a Catalog seeded with prices.
func NewCatalog(prices map[string]domain.Money) *Catalog {
	c := &Catalog{prices: make(map[string]domain.Money, len(prices))}
	for id, p := range prices {
		c.prices[id] = p
	}
	return c
}

// SetPrice changes or adds a product price.
func (c *Catalog) SetPrice(id string, price domain.Money) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prices[id] = price
}

// Remove makes a product unresolvable.
func (c *Catalog) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.prices, id)
}

// ResolvePrices returns the price of every id or a ProductUnavailableError listing the misses.
func (c *Catalog) ResolvePrices(_ context.Context, ids []string) (map[string]domain.Money, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]domain.Money, len(ids))
	var missing []string
	for _, id := range ids {
		p, ok := c.prices[id]
		if !ok {
			if _, seen := out[id]; !seen && !contains(missing, id) {
				missing = append(missing, id)
			}
			continue
		}
		out[id] = p
	}
	if len(missing) > 0 {
		return nil, &apperr.ProductUnavailableError{IDs: missing}
	}
	return out, nil
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
