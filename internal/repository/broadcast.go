package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
)

// BroadcastRepo stores broadcasts in Postgres. Every state change is a single
// conditional UPDATE; nothing here reads a row and writes it back.
type BroadcastRepo struct{ db *pgxpool.Pool }

// NewBroadcastRepo creates a new BroadcastRepo.
func NewBroadcastRepo(db *pgxpool.Pool) *BroadcastRepo { return &BroadcastRepo{db: db} }

// Insert persists a new pending broadcast.
func (r *BroadcastRepo) Insert(ctx context.Context, b *domain.Broadcast) (uuid.UUID, error) {
	if err := domain.ValidateAddress(b.DeliveryAddress); err != nil {
		return uuid.Nil, err
	}
	if err := domain.ValidateItems(b.Items); err != nil {
		return uuid.Nil, err
	}
	if !b.ExpiryTime.After(b.CreatedAt) {
		return uuid.Nil, fmt.Errorf("%w: expiry must be after creation", apperr.ErrInvalid)
	}

	items, err := encodeItems(b.Items)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode items: %w", err)
	}
	addr, err := encodeAddress(b.DeliveryAddress)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode address: %w", err)
	}
	eligible := b.EligibleRetailers
	if eligible == nil {
		eligible = []string{}
	}

	_, err = r.db.Exec(ctx, `
        INSERT INTO broadcasts (
            id, customer_id, items, origin, delivery_address, payment_method, status,
            subtotal_cents, grand_total_cents, created_at, expiry_time, eligible_retailers
        ) VALUES (
            $1, $2, $3, ST_SetSRID(ST_MakePoint($4, $5), 4326)::geography, $6, $7, 'pending',
            $8, $9, $10, $11, $12
        )
    `, b.ID.String(), b.CustomerID, items, b.Origin.Lon(), b.Origin.Lat(), addr, string(b.PaymentMethod),
		int64(b.Subtotal), int64(b.GrandTotal), b.CreatedAt, b.ExpiryTime, eligible)
	if err != nil {
		if IsDuplicate(err) {
			return uuid.Nil, apperr.ErrConflict
		}
		return uuid.Nil, wrap("insert broadcast", err)
	}
	return b.ID, nil
}

// Get returns a broadcast by id, or nil when it does not exist.
func (r *BroadcastRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Broadcast, error) {
	b, err := scanBroadcast(r.db.QueryRow(ctx,
		`SELECT `+broadcastColumns+` FROM broadcasts WHERE id = $1`, id.String()))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, wrap(fmt.Sprintf("get broadcast %s", id), err)
	}
	return b, nil
}

// ListPendingForRetailer returns claimable broadcasts whose eligibility snapshot contains retailerID.
func (r *BroadcastRepo) ListPendingForRetailer(ctx context.Context, retailerID string, now time.Time) ([]domain.Broadcast, error) {
	return r.list(ctx, "list pending broadcasts", `
        SELECT `+broadcastColumns+`
        FROM broadcasts
        WHERE status = 'pending'
          AND expiry_time > $2
          AND $1 = ANY(eligible_retailers)
        ORDER BY created_at
    `, retailerID, now)
}

// ListByCustomer returns the customer's broadcasts, newest first.
func (r *BroadcastRepo) ListByCustomer(ctx context.Context, customerID string, limit int) ([]domain.Broadcast, error) {
	return r.list(ctx, "list customer broadcasts", `
        SELECT `+broadcastColumns+`
        FROM broadcasts
        WHERE customer_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `, customerID, limit)
}

func (r *BroadcastRepo) list(ctx context.Context, op, q string, args ...any) ([]domain.Broadcast, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	out := make([]domain.Broadcast, 0)
	for rows.Next() {
		b, err := scanBroadcast(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return out, nil
}

// ClaimOrNoop accepts the broadcast for retailerID if and only if it is still
// pending, unexpired at now, and retailerID is in the eligibility snapshot.
func (r *BroadcastRepo) ClaimOrNoop(ctx context.Context, id uuid.UUID, retailerID string, now time.Time) (domain.ClaimResult, *domain.Broadcast, error) {
	return r.settlePending(ctx, "claim", `
        UPDATE broadcasts
        SET status = 'accepted', retailer_id = $2, accepted_at = $3
        WHERE id = $1
          AND status = 'pending'
          AND expiry_time > $3
          AND $2 = ANY(eligible_retailers)
        RETURNING `+broadcastColumns, id, retailerID, now)
}

// RejectOrNoop closes a pending broadcast as rejected by retailerID under the
// same predicate as ClaimOrNoop.
func (r *BroadcastRepo) RejectOrNoop(ctx context.Context, id uuid.UUID, retailerID string, now time.Time) (domain.ClaimResult, *domain.Broadcast, error) {
	return r.settlePending(ctx, "reject", `
        UPDATE broadcasts
        SET status = 'rejected', retailer_id = $2
        WHERE id = $1
          AND status = 'pending'
          AND expiry_time > $3
          AND $2 = ANY(eligible_retailers)
        RETURNING `+broadcastColumns, id, retailerID, now)
}

func (r *BroadcastRepo) settlePending(ctx context.Context, op, q string, id uuid.UUID, retailerID string, now time.Time) (domain.ClaimResult, *domain.Broadcast, error) {
	b, err := scanBroadcast(r.db.QueryRow(ctx, q, id.String(), retailerID, now))
	if err == nil {
		return domain.Claimed, b, nil
	}
	if !IsNotFound(err) {
		return domain.ClaimNotFound, nil, wrap(fmt.Sprintf("%s broadcast %s", op, id), err)
	}

	// The update matched nothing; the current row only explains why.
	current, err := r.Get(ctx, id)
	if err != nil {
		return domain.ClaimNotFound, nil, err
	}
	return domain.ClassifyClaim(current, retailerID, now), current, nil
}

// UpdateStatus moves the broadcast from expected to next if it is still in expected.
// Entering delivered stamps delivered_at; entering cancelled clears the retailer.
func (r *BroadcastRepo) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next domain.Status, now time.Time) (domain.UpdateResult, *domain.Broadcast, error) {
	if !domain.Conditional(expected, next) {
		return domain.UpdateConflict, nil, fmt.Errorf("%w: transition %s -> %s", apperr.ErrInvalid, expected, next)
	}

	b, err := scanBroadcast(r.db.QueryRow(ctx, `
        UPDATE broadcasts
        SET status = $3::text,
            delivered_at = CASE WHEN $3::text = 'delivered' THEN $4 ELSE delivered_at END,
            retailer_id  = CASE WHEN $3::text = 'cancelled' THEN NULL ELSE retailer_id END
        WHERE id = $1 AND status = $2::text
        RETURNING `+broadcastColumns, id.String(), string(expected), string(next), now))
	if err == nil {
		return domain.Updated, b, nil
	}
	if !IsNotFound(err) {
		return domain.UpdateNotFound, nil, wrap(fmt.Sprintf("update broadcast %s status", id), err)
	}

	current, err := r.Get(ctx, id)
	if err != nil {
		return domain.UpdateNotFound, nil, err
	}
	if current == nil {
		return domain.UpdateNotFound, nil, nil
	}
	return domain.UpdateConflict, current, nil
}

// ExpireOverdue flips every pending broadcast whose window closed at or before now
// and returns the flipped rows.
func (r *BroadcastRepo) ExpireOverdue(ctx context.Context, now time.Time) ([]domain.Broadcast, error) {
	return r.list(ctx, "expire overdue broadcasts", `
        UPDATE broadcasts
        SET status = 'expired'
        WHERE status = 'pending' AND expiry_time <= $1
        RETURNING `+broadcastColumns, now)
}

// SetAssignedAgent records agentID on an accepted or preparing broadcast that has none yet.
func (r *BroadcastRepo) SetAssignedAgent(ctx context.Context, id uuid.UUID, agentID string) (domain.UpdateResult, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE broadcasts
        SET assigned_agent_id = $2
        WHERE id = $1
          AND status IN ('accepted', 'preparing')
          AND assigned_agent_id IS NULL
    `, id.String(), agentID)
	if err != nil {
		return domain.UpdateNotFound, wrap(fmt.Sprintf("assign agent to %s", id), err)
	}
	if ct.RowsAffected() == 1 {
		return domain.Updated, nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM broadcasts WHERE id = $1)`, id.String()).Scan(&exists); err != nil {
		return domain.UpdateNotFound, wrap(fmt.Sprintf("assign agent to %s", id), err)
	}
	if !exists {
		return domain.UpdateNotFound, nil
	}
	return domain.UpdateConflict, nil
}
