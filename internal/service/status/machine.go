// Package status drives broadcasts along their lifecycle after the claim.
package status

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/fanout"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/metrics"
)

// Machine applies conditional status transitions on behalf of an actor.
type Machine struct {
	store            BroadcastStore
	agents           AgentReleaser
	fanout           fanout.Fanout
	metrics          *metrics.Dispatch
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewMachine creates a new Machine.
func NewMachine(store BroadcastStore, agents AgentReleaser, fan fanout.Fanout, m *metrics.Dispatch, timeout time.Duration, logger logx.Logger) *Machine {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if fan == nil {
		fan = fanout.Nop{}
	}
	if m == nil {
		m = metrics.NewDispatch()
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Machine{
		store:            store,
		agents:           agents,
		fanout:           fan,
		metrics:          m,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (m *Machine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.operationTimeout)
}

// Cancel withdraws a pending broadcast on behalf of its customer.
func (m *Machine) Cancel(ctx context.Context, id uuid.UUID, customerID string) (domain.Broadcast, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	b, err := m.load(ctx, id)
	if err != nil {
		return domain.Broadcast{}, err
	}
	if b.CustomerID != customerID {
		return domain.Broadcast{}, apperr.ErrForbidden
	}

	actor := domain.Actor{Kind: domain.ActorCustomer, ID: customerID}
	updated, err := m.apply(ctx, b, domain.StatusPending, domain.StatusCancelled, actor)
	if err != nil {
		return domain.Broadcast{}, err
	}

	channels := []string{fanout.CustomerChannel(updated.CustomerID)}
	for _, r := range updated.EligibleRetailers {
		channels = append(channels, fanout.RetailerChannel(r))
	}
	m.notify(ctx, updated, channels)
	return updated, nil
}

// Advance moves a claimed broadcast to next. The broadcast must currently be
// in next's single predecessor; a stale request yields apperr.ErrConflict.
//
// Retailers drive every step and may cancel an accepted broadcast. The
// assigned agent reports shipped and delivered. A customer can only cancel.
func (m *Machine) Advance(ctx context.Context, id uuid.UUID, actor domain.Actor, next domain.Status) (domain.Broadcast, error) {
	if actor.Kind == domain.ActorCustomer {
		if next != domain.StatusCancelled {
			return domain.Broadcast{}, apperr.ErrForbidden
		}
		return m.Cancel(ctx, id, actor.ID)
	}

	expected, ok := domain.Predecessor(next)
	if !ok {
		return domain.Broadcast{}, fmt.Errorf("%w: status %q cannot be set directly", apperr.ErrInvalid, next)
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	b, err := m.load(ctx, id)
	if err != nil {
		return domain.Broadcast{}, err
	}
	// a policy cancel clears the retailer, so check the state first or a stale
	// request from that retailer would look like an ownership failure
	if b.Status != expected {
		return domain.Broadcast{}, staleErr(b.Status, expected)
	}
	if err := authorize(b, actor, next); err != nil {
		return domain.Broadcast{}, err
	}

	updated, err := m.apply(ctx, b, expected, next, actor)
	if err != nil {
		return domain.Broadcast{}, err
	}

	if next.ReleasesAgent() && updated.AssignedAgentID != "" && m.agents != nil {
		if err := m.agents.Release(ctx, updated.AssignedAgentID); err != nil {
			m.logger.Error("agent release failed",
				logx.String("broadcast_id", id.String()),
				logx.String("agent_id", updated.AssignedAgentID),
				logx.Err(err),
			)
		}
	}

	// a policy cancel clears the retailer, so notify the one that held it
	m.notify(ctx, updated, []string{
		fanout.CustomerChannel(updated.CustomerID),
		fanout.RetailerChannel(b.RetailerID),
	})
	return updated, nil
}

func authorize(b *domain.Broadcast, actor domain.Actor, next domain.Status) error {
	switch actor.Kind {
	case domain.ActorSystem:
		return nil
	case domain.ActorRetailer:
		if actor.ID == "" || b.RetailerID != actor.ID {
			return apperr.ErrForbidden
		}
		return nil
	case domain.ActorAgent:
		if actor.ID == "" || b.AssignedAgentID != actor.ID {
			return apperr.ErrForbidden
		}
		if next != domain.StatusShipped && next != domain.StatusDelivered {
			return apperr.ErrForbidden
		}
		return nil
	default:
		return apperr.ErrForbidden
	}
}

func (m *Machine) load(ctx context.Context, id uuid.UUID) (*domain.Broadcast, error) {
	b, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.ErrNotFound
	}
	return b, nil
}

func (m *Machine) apply(ctx context.Context, b *domain.Broadcast, expected, next domain.Status, actor domain.Actor) (domain.Broadcast, error) {
	res, updated, err := m.store.UpdateStatus(ctx, b.ID, expected, next, m.now())
	if err != nil {
		return domain.Broadcast{}, err
	}
	switch res {
	case domain.Updated:
	case domain.UpdateNotFound:
		return domain.Broadcast{}, apperr.ErrNotFound
	default:
		current := b.Status
		if updated != nil {
			current = updated.Status
		}
		return domain.Broadcast{}, staleErr(current, expected)
	}

	m.metrics.Transitions.WithLabelValues(string(next)).Inc()
	m.logger.Info("broadcast status changed",
		logx.String("event", "status_changed"),
		logx.String("broadcast_id", b.ID.String()),
		logx.String("from", string(expected)),
		logx.String("to", string(next)),
		logx.String("actor", string(actor.Kind)),
		logx.String("actor_id", actor.ID),
	)
	return *updated, nil
}

func staleErr(current, expected domain.Status) error {
	return fmt.Errorf("%w: broadcast is %s, expected %s", apperr.ErrConflict, current, expected)
}

func (m *Machine) notify(ctx context.Context, b domain.Broadcast, channels []string) {
	ev := fanout.NewEvent(fanout.EventStatusChanged, b, m.now())
	for _, ch := range channels {
		if err := m.fanout.Push(ctx, ch, ev); err != nil {
			m.logger.Warn("notify failed",
				logx.String("channel", ch),
				logx.String("broadcast_id", b.ID.String()),
				logx.Err(err),
			)
		}
	}
}
