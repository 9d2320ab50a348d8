// Package events applies delivery agent status reports to broadcasts.
package events

import (
	"context"
	"errors"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

// Processor processes delivery events
type Processor struct {
	status  StatusPort
	logger  logx.Logger
	factory *actionFactory
}

// NewProcessor creates a new events.Processor
func NewProcessor(status StatusPort, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{status: status, logger: logger}
	p.factory = newActionFactory(p.advance, p.advance)
	return p
}

// Handle processes a single DeliveryEvent. Reports that lost a race or no
// longer apply are acknowledged; redelivery is harmless because every
// transition is conditional on its predecessor.
func (p *Processor) Handle(ctx context.Context, e DeliveryEvent) error {
	fn, ok := p.factory.get(e.Status)
	if !ok {
		p.logger.Debug("delivery event ignored",
			logx.String("broadcast_id", e.BroadcastID.String()),
			logx.String("status", string(e.Status)),
		)
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) advance(ctx context.Context, e DeliveryEvent) error {
	actor := domain.Actor{Kind: domain.ActorAgent, ID: e.AgentID}
	_, err := p.status.Advance(ctx, e.BroadcastID, actor, e.Status)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperr.ErrConflict),
		errors.Is(err, apperr.ErrNotFound),
		errors.Is(err, apperr.ErrForbidden):
		p.logger.Warn("delivery event skipped",
			logx.String("broadcast_id", e.BroadcastID.String()),
			logx.String("agent_id", e.AgentID),
			logx.String("status", string(e.Status)),
			logx.Err(err),
		)
		return nil
	default:
		return err
	}
}
