// Package assign reserves delivery agents for accepted broadcasts.
package assign

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/fanout"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/metrics"
)

// Assigner hands delivery agents to accepted broadcasts.
type Assigner struct {
	agents           AgentStore
	broadcasts       BroadcastStore
	fanout           fanout.Fanout
	metrics          *metrics.Dispatch
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewAssigner creates a new Assigner.
func NewAssigner(agents AgentStore, broadcasts BroadcastStore, fan fanout.Fanout, m *metrics.Dispatch, timeout time.Duration, logger logx.Logger) *Assigner {
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
	return &Assigner{
		agents:           agents,
		broadcasts:       broadcasts,
		fanout:           fan,
		metrics:          m,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (a *Assigner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.operationTimeout)
}

// Reserve takes the best-rated free agent of retailerID. apperr.ErrNoneAvailable
// is a normal outcome.
func (a *Assigner) Reserve(ctx context.Context, retailerID string) (*domain.DeliveryAgent, error) {
	agent, err := a.agents.Reserve(ctx, retailerID)
	switch {
	case err == nil:
		a.metrics.AgentReservations.WithLabelValues("reserved").Inc()
	case errors.Is(err, apperr.ErrNoneAvailable):
		a.metrics.AgentReservations.WithLabelValues("none_available").Inc()
	default:
		a.metrics.AgentReservations.WithLabelValues("error").Inc()
	}
	return agent, err
}

// Release frees agentID. An empty id is a no-op.
func (a *Assigner) Release(ctx context.Context, agentID string) error {
	if agentID == "" {
		return nil
	}
	released, err := a.agents.Release(ctx, agentID)
	if err != nil {
		return err
	}
	if !released {
		a.logger.Debug("agent already free", logx.String("agent_id", agentID))
	}
	return nil
}

// AssignToBroadcast reserves an agent of the broadcast's retailer and records it.
// If the broadcast moved on or got an agent meanwhile, the reserved agent is freed
// again and apperr.ErrConflict is returned.
func (a *Assigner) AssignToBroadcast(ctx context.Context, b domain.Broadcast) (*domain.DeliveryAgent, error) {
	agent, err := a.Reserve(ctx, b.RetailerID)
	if err != nil {
		return nil, err
	}

	res, err := a.broadcasts.SetAssignedAgent(ctx, b.ID, agent.ID)
	if err == nil && res != domain.Updated {
		err = fmt.Errorf("assign agent to %s: %w", b.ID, apperr.ErrConflict)
	}
	if err != nil {
		if relErr := a.Release(ctx, agent.ID); relErr != nil {
			a.logger.Error("agent release failed",
				logx.String("agent_id", agent.ID),
				logx.String("broadcast_id", b.ID.String()),
				logx.Err(relErr),
			)
		}
		return nil, err
	}

	b.AssignedAgentID = agent.ID
	a.logger.Info("delivery agent assigned",
		logx.String("event", "delivery_assigned"),
		logx.String("broadcast_id", b.ID.String()),
		logx.String("retailer_id", b.RetailerID),
		logx.String("agent_id", agent.ID),
	)

	ev := fanout.NewEvent(fanout.EventDeliveryAssigned, b, a.now()).WithAgent(agent)
	if err := a.fanout.Push(ctx, fanout.AgentChannel(agent.ID), ev); err != nil {
		a.logger.Warn("notify failed",
			logx.String("channel", fanout.AgentChannel(agent.ID)),
			logx.String("broadcast_id", b.ID.String()),
			logx.Err(err),
		)
	}
	return agent, nil
}

// AssignDelivery retries the reservation for an accepted broadcast of
// retailerID that has no agent yet.
func (a *Assigner) AssignDelivery(ctx context.Context, id uuid.UUID, retailerID string) (domain.AcceptResult, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	b, err := a.broadcasts.Get(ctx, id)
	if err != nil {
		return domain.AcceptResult{}, err
	}
	if b == nil {
		return domain.AcceptResult{}, apperr.ErrNotFound
	}
	if b.RetailerID != retailerID {
		return domain.AcceptResult{}, apperr.ErrForbidden
	}
	if (b.Status != domain.StatusAccepted && b.Status != domain.StatusPreparing) || b.AssignedAgentID != "" {
		return domain.AcceptResult{}, apperr.ErrConflict
	}

	agent, err := a.AssignToBroadcast(ctx, *b)
	if err != nil {
		return domain.AcceptResult{}, err
	}
	b.AssignedAgentID = agent.ID
	return domain.AcceptResult{Broadcast: *b, Agent: agent}, nil
}
