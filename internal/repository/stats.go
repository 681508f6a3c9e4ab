package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepository struct {
	db *pgxpool.Pool
}

type TripOverview struct {
	TotalTrips     int
	PlannedTrips   int
	CompletedTrips int
	CancelledTrips int
	TotalBudget    float64
}

// NewStatsRepository создает репозиторий статистики по поездкам.
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// Overview возвращает сводку по поездкам пользователя.
func (r *StatsRepository) Overview(ctx context.Context, userID uuid.UUID) (TripOverview, error) {
	var overview TripOverview

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE status = 'PLANNED'),
		        COUNT(*) FILTER (WHERE status = 'COMPLETED'),
		        COUNT(*) FILTER (WHERE status = 'CANCELLED'),
		        COALESCE(SUM(budget), 0)
		 FROM trips
		 WHERE user_id = $1`,
		userID,
	).Scan(&overview.TotalTrips, &overview.PlannedTrips, &overview.CompletedTrips, &overview.CancelledTrips, &overview.TotalBudget)
	if err != nil {
		return overview, err
	}

	return overview, nil
}
