package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paulmach/orb"
)

// RetailerGeoRepo answers eligibility queries against the retailer directory using PostGIS.
type RetailerGeoRepo struct {
	db           *pgxpool.Pool
	radiusMeters float64
}

// NewRetailerGeoRepo creates a new RetailerGeoRepo with the given search radius.
func NewRetailerGeoRepo(db *pgxpool.Pool, radiusMeters float64) *RetailerGeoRepo {
	return &RetailerGeoRepo{db: db, radiusMeters: radiusMeters}
}

// FindEligibleRetailers returns active retailers within the radius of p that list
// postalCode as a service area, nearest first.
func (r *RetailerGeoRepo) FindEligibleRetailers(ctx context.Context, p orb.Point, postalCode string) ([]string, error) {
	rows, err := r.db.Query(ctx, `
        WITH origin AS (
            SELECT ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography AS g
        )
        SELECT r.id
        FROM retailers r, origin o
        WHERE r.is_active
          AND $3 = ANY(r.service_areas)
          AND ST_DWithin(r.service_point, o.g, $4)
        ORDER BY ST_Distance(r.service_point, o.g), r.id
    `, p.Lon(), p.Lat(), postalCode, r.radiusMeters)
	if err != nil {
		return nil, wrap("find eligible retailers", err)
	}
	return collectIDs("find eligible retailers", rows)
}

// collectIDs drains a single text column and closes rows.
func collectIDs(op string, rows pgx.Rows) ([]string, error) {
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, wrap(op+": scan", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return ids, nil
}
