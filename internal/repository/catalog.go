package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
)

// CatalogRepo reads authoritative prices from the products table.
type CatalogRepo struct{ db *pgxpool.Pool }

// NewCatalogRepo creates a new CatalogRepo.
func NewCatalogRepo(db *pgxpool.Pool) *CatalogRepo { return &CatalogRepo{db: db} }

// ResolvePrices returns the current unit price of every id. Unknown or
// unavailable products fail the whole call with a ProductUnavailableError.
func (r *CatalogRepo) ResolvePrices(ctx context.Context, ids []string) (map[string]domain.Money, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, price_cents FROM products
        WHERE id = ANY($1) AND is_available
    `, ids)
	if err != nil {
		return nil, wrap("resolve prices", err)
	}
	defer rows.Close()

	prices := make(map[string]domain.Money, len(ids))
	for rows.Next() {
		var (
			id    string
			cents int64
		)
		if err := rows.Scan(&id, &cents); err != nil {
			return nil, wrap("scan price", err)
		}
		prices[id] = domain.Money(cents)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("resolve prices", err)
	}

	if missing := missingIDs(ids, prices); len(missing) > 0 {
		return nil, &apperr.ProductUnavailableError{IDs: missing}
	}
	return prices, nil
}

func missingIDs(ids []string, prices map[string]domain.Money) []string {
	var missing []string
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := prices[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
