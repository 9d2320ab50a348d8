// Package dispatch creates broadcasts and settles the race between retailers claiming them.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/fanout"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/metrics"
)

const defaultHistoryLimit = 50

// Options are the fixed business constants of the engine.
type Options struct {
	ClaimWindow      time.Duration
	Pricing          domain.Pricing
	OperationTimeout time.Duration
}

// Service is the dispatch engine.
type Service struct {
	store    BroadcastStore
	catalog  Catalog
	geo      GeoIndex
	assigner Assigner
	fanout   fanout.Fanout
	metrics  *metrics.Dispatch
	opts     Options
	logger   logx.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

// NewService creates a new dispatch Service. A nil assigner leaves accepted
// broadcasts without an agent.
func NewService(store BroadcastStore, catalog Catalog, geo GeoIndex, assigner Assigner, fan fanout.Fanout, m *metrics.Dispatch, opts Options, logger logx.Logger) *Service {
	if opts.OperationTimeout <= 0 {
		opts.OperationTimeout = 3 * time.Second
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
	return &Service{
		store:    store,
		catalog:  catalog,
		geo:      geo,
		assigner: assigner,
		fanout:   fan,
		metrics:  m,
		opts:     opts,
		logger:   logger,
		tracer:   otel.Tracer("service-dispatch/dispatch"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opts.OperationTimeout)
}

// Create validates and prices a request, snapshots the eligible retailers and
// stores the broadcast as pending. Nothing is stored when validation or
// pricing fails. Retailer notification is best-effort.
func (s *Service) Create(ctx context.Context, in domain.CreateInput) (b domain.Broadcast, err error) {
	ctx, span := s.tracer.Start(ctx, "dispatch.Create", trace.WithAttributes(
		attribute.String("customer_id", in.CustomerID),
		attribute.Int("lines", len(in.Lines)),
	))
	defer func() { endSpan(span, err) }()

	if s.opts.ClaimWindow <= 0 {
		return domain.Broadcast{}, fmt.Errorf("%w: claim window must be positive", apperr.ErrInvalid)
	}
	if err := domain.ValidateCreate(in); err != nil {
		return domain.Broadcast{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	items, err := s.price(ctx, in.Lines)
	if err != nil {
		return domain.Broadcast{}, err
	}
	subtotal, grand, err := s.opts.Pricing.Totals(items)
	if err != nil {
		return domain.Broadcast{}, err
	}

	eligible, err := s.geo.FindEligibleRetailers(ctx, in.Origin, in.DeliveryAddress.PostalCode)
	if err != nil {
		return domain.Broadcast{}, err
	}

	now := s.now()
	b = domain.Broadcast{
		ID:                uuid.New(),
		CustomerID:        in.CustomerID,
		Items:             items,
		Origin:            in.Origin,
		DeliveryAddress:   in.DeliveryAddress,
		PaymentMethod:     in.PaymentMethod,
		Status:            domain.StatusPending,
		Subtotal:          subtotal,
		GrandTotal:        grand,
		CreatedAt:         now,
		ExpiryTime:        now.Add(s.opts.ClaimWindow),
		EligibleRetailers: eligible,
	}
	if _, err := s.store.Insert(ctx, &b); err != nil {
		return domain.Broadcast{}, err
	}

	s.metrics.Created.Inc()
	span.SetAttributes(attribute.String("broadcast_id", b.ID.String()), attribute.Int("eligible", len(eligible)))
	s.logger.Info("broadcast created",
		logx.String("event", "broadcast_created"),
		logx.String("broadcast_id", b.ID.String()),
		logx.String("customer_id", b.CustomerID),
		logx.Int("eligible", len(eligible)),
		logx.String("grand_total", b.GrandTotal.String()),
		logx.Time("expiry_time", b.ExpiryTime),
	)
	if len(eligible) == 0 {
		s.logger.Warn("no eligible retailers",
			logx.String("broadcast_id", b.ID.String()),
			logx.String("postal_code", b.DeliveryAddress.PostalCode),
		)
	}

	ev := fanout.NewEvent(fanout.EventBroadcastCreated, b, now)
	for _, r := range eligible {
		s.push(ctx, fanout.RetailerChannel(r), ev)
	}
	return b, nil
}

func (s *Service) price(ctx context.Context, lines []domain.OrderLine) ([]domain.Item, error) {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	prices, err := s.catalog.ResolvePrices(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(lines))
	var missing []string
	for _, l := range lines {
		p, ok := prices[l.ProductID]
		if !ok {
			missing = append(missing, l.ProductID)
			continue
		}
		items = append(items, domain.Item{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: p})
	}
	if len(missing) > 0 {
		return nil, &apperr.ProductUnavailableError{IDs: missing}
	}
	return items, nil
}

// Get returns a broadcast by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Broadcast, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	b, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Broadcast{}, err
	}
	if b == nil {
		return domain.Broadcast{}, apperr.ErrNotFound
	}
	return *b, nil
}

// ListPending returns the claimable broadcasts whose eligibility snapshot
// includes retailerID, oldest first.
func (s *Service) ListPending(ctx context.Context, retailerID string) ([]domain.Broadcast, error) {
	if retailerID == "" {
		return nil, fmt.Errorf("%w: retailer id is required", apperr.ErrInvalid)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.ListPendingForRetailer(ctx, retailerID, s.now())
}

// ListForCustomer returns a customer's broadcasts, newest first.
func (s *Service) ListForCustomer(ctx context.Context, customerID string, limit int) ([]domain.Broadcast, error) {
	if customerID == "" {
		return nil, fmt.Errorf("%w: customer id is required", apperr.ErrInvalid)
	}
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.ListByCustomer(ctx, customerID, limit)
}

// Accept claims a pending broadcast for retailerID. Exactly one concurrent
// caller wins; the rest get apperr.ErrConflict. A claim is never retried.
// On success a delivery agent is reserved if one is free; running out of
// agents leaves the broadcast accepted without one.
func (s *Service) Accept(ctx context.Context, id uuid.UUID, retailerID string) (res domain.AcceptResult, err error) {
	ctx, span := s.tracer.Start(ctx, "dispatch.Accept", trace.WithAttributes(
		attribute.String("broadcast_id", id.String()),
		attribute.String("retailer_id", retailerID),
	))
	defer func() { endSpan(span, err) }()

	if retailerID == "" {
		return domain.AcceptResult{}, fmt.Errorf("%w: retailer id is required", apperr.ErrInvalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.now()
	outcome, b, err := s.store.ClaimOrNoop(ctx, id, retailerID, now)
	if err != nil {
		s.metrics.Claims.WithLabelValues("error").Inc()
		return domain.AcceptResult{}, err
	}
	s.metrics.Claims.WithLabelValues(outcome.String()).Inc()
	span.SetAttributes(attribute.String("outcome", outcome.String()))
	if err := claimError(outcome); err != nil {
		s.logger.Info("claim lost",
			logx.String("broadcast_id", id.String()),
			logx.String("retailer_id", retailerID),
			logx.String("outcome", outcome.String()),
		)
		return domain.AcceptResult{}, err
	}

	s.metrics.Transitions.WithLabelValues(string(domain.StatusAccepted)).Inc()
	s.logger.Info("broadcast accepted",
		logx.String("event", "broadcast_accepted"),
		logx.String("broadcast_id", id.String()),
		logx.String("retailer_id", retailerID),
	)
	s.push(ctx, fanout.CustomerChannel(b.CustomerID), fanout.NewEvent(fanout.EventBroadcastAccepted, *b, now))

	res = domain.AcceptResult{Broadcast: *b}
	if s.assigner == nil {
		return res, nil
	}
	agent, aerr := s.assigner.AssignToBroadcast(ctx, *b)
	switch {
	case aerr == nil:
		res.Agent = agent
		res.Broadcast.AssignedAgentID = agent.ID
	case errors.Is(aerr, apperr.ErrNoneAvailable):
		s.logger.Info("no delivery agent available",
			logx.String("broadcast_id", id.String()),
			logx.String("retailer_id", retailerID),
		)
	default:
		s.logger.Error("delivery agent assignment failed",
			logx.String("broadcast_id", id.String()),
			logx.String("retailer_id", retailerID),
			logx.Err(aerr),
		)
	}
	return res, nil
}

// Reject closes a pending broadcast as rejected by retailerID, under the
// same predicate as Accept.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, retailerID string) (domain.Broadcast, error) {
	if retailerID == "" {
		return domain.Broadcast{}, fmt.Errorf("%w: retailer id is required", apperr.ErrInvalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.now()
	outcome, b, err := s.store.RejectOrNoop(ctx, id, retailerID, now)
	if err != nil {
		return domain.Broadcast{}, err
	}
	if err := claimError(outcome); err != nil {
		return domain.Broadcast{}, err
	}

	s.metrics.Transitions.WithLabelValues(string(domain.StatusRejected)).Inc()
	s.logger.Info("broadcast rejected",
		logx.String("event", "broadcast_rejected"),
		logx.String("broadcast_id", id.String()),
		logx.String("retailer_id", retailerID),
	)
	s.push(ctx, fanout.CustomerChannel(b.CustomerID), fanout.NewEvent(fanout.EventStatusChanged, *b, now))
	return *b, nil
}

func claimError(r domain.ClaimResult) error {
	switch r {
	case domain.Claimed:
		return nil
	case domain.ClaimAlreadyClaimed:
		return fmt.Errorf("%w: broadcast no longer available", apperr.ErrConflict)
	case domain.ClaimExpired:
		return apperr.ErrExpired
	case domain.ClaimNotEligible:
		return fmt.Errorf("%w: retailer is not eligible for this broadcast", apperr.ErrForbidden)
	default:
		return apperr.ErrNotFound
	}
}

func (s *Service) push(ctx context.Context, channel string, ev fanout.Event) {
	if err := s.fanout.Push(ctx, channel, ev); err != nil {
		s.logger.Warn("notify failed",
			logx.String("channel", channel),
			logx.String("event_type", string(ev.Type)),
			logx.String("broadcast_id", ev.Broadcast.ID),
			logx.Err(err),
		)
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
