// Package memory holds in-process implementations of the dispatch stores for
// tests and local development. Nothing is persisted; production wiring uses
// the Postgres repositories. Each method takes the store lock once, so every
// conditional update is indivisible exactly like its single-statement SQL
// counterpart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
)

// Store keeps broadcasts and delivery agents in memory.
type Store struct {
	mu         sync.Mutex
	broadcasts map[uuid.UUID]*domain.Broadcast
	agents     map[string]*domain.DeliveryAgent
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		broadcasts: make(map[uuid.UUID]*domain.Broadcast),
		agents:     make(map[string]*domain.DeliveryAgent),
	}
}

// Insert stores a copy of b as pending.
func (s *Store) Insert(_ context.Context, b *domain.Broadcast) (uuid.UUID, error) {
	if err := domain.ValidateAddress(b.DeliveryAddress); err != nil {
		return uuid.Nil, err
	}
	if err := domain.ValidateItems(b.Items); err != nil {
		return uuid.Nil, err
	}
	if !b.ExpiryTime.After(b.CreatedAt) {
		return uuid.Nil, fmt.Errorf("%w: expiry must be after creation", apperr.ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.broadcasts[b.ID]; ok {
		return uuid.Nil, apperr.ErrConflict
	}
	c := clone(b)
	c.Status = domain.StatusPending
	c.RetailerID = ""
	c.AssignedAgentID = ""
	c.AcceptedAt, c.DeliveredAt = nil, nil
	s.broadcasts[c.ID] = c
	return c.ID, nil
}

// Get returns a copy of the broadcast, or nil when unknown.
func (s *Store) Get(_ context.Context, id uuid.UUID) (*domain.Broadcast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.broadcasts[id]
	if !ok {
		return nil, nil
	}
	return clone(b), nil
}

// ListPendingForRetailer returns claimable broadcasts listing retailerID, oldest first.
func (s *Store) ListPendingForRetailer(_ context.Context, retailerID string, now time.Time) ([]domain.Broadcast, error) {
	return s.filter(func(b *domain.Broadcast) bool {
		return b.Claimable(now) && b.Eligible(retailerID)
	}, false, 0), nil
}

// ListByCustomer returns up to limit broadcasts of customerID, newest first.
func (s *Store) ListByCustomer(_ context.Context, customerID string, limit int) ([]domain.Broadcast, error) {
	return s.filter(func(b *domain.Broadcast) bool {
		return b.CustomerID == customerID
	}, true, limit), nil
}

func (s *Store) filter(keep func(*domain.Broadcast) bool, newestFirst bool, limit int) []domain.Broadcast {
	s.mu.Lock()
	out := make([]domain.Broadcast, 0)
	for _, b := range s.broadcasts {
		if keep(b) {
			out = append(out, *clone(b))
		}
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if newestFirst {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ClaimOrNoop accepts the broadcast for retailerID when it is pending,
// unexpired at now, and retailerID is in its eligibility snapshot.
func (s *Store) ClaimOrNoop(_ context.Context, id uuid.UUID, retailerID string, now time.Time) (domain.ClaimResult, *domain.Broadcast, error) {
	return s.settlePending(id, retailerID, now, func(b *domain.Broadcast) {
		b.Status = domain.StatusAccepted
		b.RetailerID = retailerID
		at := now
		b.AcceptedAt = &at
	})
}

// RejectOrNoop closes a pending broadcast as rejected by retailerID.
func (s *Store) RejectOrNoop(_ context.Context, id uuid.UUID, retailerID string, now time.Time) (domain.ClaimResult, *domain.Broadcast, error) {
	return s.settlePending(id, retailerID, now, func(b *domain.Broadcast) {
		b.Status = domain.StatusRejected
		b.RetailerID = retailerID
	})
}

func (s *Store) settlePending(id uuid.UUID, retailerID string, now time.Time, apply func(*domain.Broadcast)) (domain.ClaimResult, *domain.Broadcast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.broadcasts[id]
	if !ok {
		return domain.ClaimNotFound, nil, nil
	}
	if !b.Claimable(now) || !b.Eligible(retailerID) {
		return domain.ClassifyClaim(b, retailerID, now), clone(b), nil
	}
	apply(b)
	return domain.Claimed, clone(b), nil
}

// UpdateStatus moves the broadcast from expected to next if it is still in expected.
func (s *Store) UpdateStatus(_ context.Context, id uuid.UUID, expected, next domain.Status, now time.Time) (domain.UpdateResult, *domain.Broadcast, error) {
	if !domain.Conditional(expected, next) {
		return domain.UpdateConflict, nil, fmt.Errorf("%w: transition %s -> %s", apperr.ErrInvalid, expected, next)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.broadcasts[id]
	if !ok {
		return domain.UpdateNotFound, nil, nil
	}
	if b.Status != expected {
		return domain.UpdateConflict, clone(b), nil
	}
	b.Status = next
	switch next {
	case domain.StatusDelivered:
		at := now
		b.DeliveredAt = &at
	case domain.StatusCancelled:
		b.RetailerID = ""
	}
	return domain.Updated, clone(b), nil
}

// ExpireOverdue flips every pending broadcast whose window closed at or before now.
func (s *Store) ExpireOverdue(_ context.Context, now time.Time) ([]domain.Broadcast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Broadcast, 0)
	for _, b := range s.broadcasts {
		if b.Status == domain.StatusPending && !b.ExpiryTime.After(now) {
			b.Status = domain.StatusExpired
			out = append(out, *clone(b))
		}
	}
	return out, nil
}

// SetAssignedAgent records agentID on an accepted or preparing broadcast without an agent.
func (s *Store) SetAssignedAgent(_ context.Context, id uuid.UUID, agentID string) (domain.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.broadcasts[id]
	if !ok {
		return domain.UpdateNotFound, nil
	}
	if (b.Status != domain.StatusAccepted && b.Status != domain.StatusPreparing) || b.AssignedAgentID != "" {
		return domain.UpdateConflict, nil
	}
	b.AssignedAgentID = agentID
	return domain.Updated, nil
}

// PutAgent registers or replaces a delivery agent.
func (s *Store) PutAgent(a domain.DeliveryAgent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agents[a.ID] = &a
}

// Agent returns a copy of the agent, or false when unknown.
func (s *Store) Agent(id string) (domain.DeliveryAgent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.agents[id]
	if !ok {
		return domain.DeliveryAgent{}, false
	}
	return *a, true
}

// Reserve marks the best-rated free agent of retailerID as busy.
func (s *Store) Reserve(_ context.Context, retailerID string) (*domain.DeliveryAgent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var best *domain.DeliveryAgent
	for _, a := range s.agents {
		if a.RetailerID != retailerID || !a.IsAvailable {
			continue
		}
		if best == nil || a.Rating > best.Rating || (a.Rating == best.Rating && a.ID < best.ID) {
			best = a
		}
	}
	if best == nil {
		return nil, apperr.ErrNoneAvailable
	}
	best.IsAvailable = false
	out := *best
	return &out, nil
}

// Release frees agentID. It reports false when the agent was already free or unknown.
func (s *Store) Release(_ context.Context, agentID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.agents[agentID]
	if !ok || a.IsAvailable {
		return false, nil
	}
	a.IsAvailable = true
	return true, nil
}

func clone(b *domain.Broadcast) *domain.Broadcast {
	c := *b
	c.Items = append([]domain.Item(nil), b.Items...)
	c.EligibleRetailers = append([]string{}, b.EligibleRetailers...)
	if b.AcceptedAt != nil {
		t := *b.AcceptedAt
		c.AcceptedAt = &t
	}
	if b.DeliveredAt != nil {
		t := *b.DeliveredAt
		c.DeliveredAt = &t
	}
	return &c
}
