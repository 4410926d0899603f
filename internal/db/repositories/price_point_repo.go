package repositories

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"farewatch/backend/internal/constants"
	"farewatch/backend/internal/models/entities"
)

type PricePointRepo struct {
	db *sqlx.DB
}

func NewPricePointRepo(db *sqlx.DB) *PricePointRepo {
	return &PricePointRepo{db}
}

// Insert records one observed fare.
func (r *PricePointRepo) Insert(ctx context.Context, point *entities.PricePoint) error {
	_, err := r.db.ExecContext(ctx, constants.InsertPricePoint,
		point.Route, point.Airline, point.Price, point.Source, point.ObservedAt)
	return err
}

// RecentByRoute returns fares observed for a route within the window,
// newest first.
func (r *PricePointRepo) RecentByRoute(ctx context.Context, route string, window time.Duration) ([]entities.PricePoint, error) {
	var points []entities.PricePoint
	err := r.db.SelectContext(ctx, &points, constants.RecentPricePointsByRoute,
		route, time.Now().Add(-window))
	return points, err
}

// LowestByRoute returns the lowest fare observed for a route within the
// window, or 0 when none was recorded.
func (r *PricePointRepo) LowestByRoute(ctx context.Context, route string, window time.Duration) (float64, error) {
	var lowest float64
	err := r.db.GetContext(ctx, &lowest, constants.LowestPriceByRoute,
		route, time.Now().Add(-window))
	return lowest, err
}
