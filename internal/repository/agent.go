package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paulmach/orb"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
)

// AgentRepo represents the delivery agent registry.
type AgentRepo struct{ db *pgxpool.Pool }

// NewAgentRepo creates a new AgentRepo.
func NewAgentRepo(db *pgxpool.Pool) *AgentRepo { return &AgentRepo{db: db} }

// Reserve marks the best-rated free agent of retailerID as busy and returns it.
// Concurrent callers skip rows locked by each other, so no agent is handed out twice.
func (r *AgentRepo) Reserve(ctx context.Context, retailerID string) (*domain.DeliveryAgent, error) {
	row := r.db.QueryRow(ctx, `
        UPDATE delivery_agents
        SET is_available = FALSE, updated_at = now()
        WHERE id = (
            SELECT id FROM delivery_agents
            WHERE retailer_id = $1 AND is_available
            ORDER BY rating DESC, id
            LIMIT 1
            FOR UPDATE SKIP LOCKED
        )
          AND is_available
        RETURNING id, retailer_id,
            COALESCE(ST_X(location::geometry), 0), COALESCE(ST_Y(location::geometry), 0),
            is_available, rating
    `, retailerID)

	var (
		a        domain.DeliveryAgent
		lon, lat float64
	)
	if err := row.Scan(&a.ID, &a.RetailerID, &lon, &lat, &a.IsAvailable, &a.Rating); err != nil {
		if IsNotFound(err) {
			return nil, apperr.ErrNoneAvailable
		}
		return nil, wrap(fmt.Sprintf("reserve agent for retailer %q", retailerID), err)
	}
	a.Location = orb.Point{lon, lat}
	return &a, nil
}

// Release frees agentID. It reports false when the agent was already free.
func (r *AgentRepo) Release(ctx context.Context, agentID string) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE delivery_agents
        SET is_available = TRUE, updated_at = now()
        WHERE id = $1 AND NOT is_available
    `, agentID)
	if err != nil {
		return false, wrap(fmt.Sprintf("release agent %q", agentID), err)
	}
	return ct.RowsAffected() == 1, nil
}
