package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/travel-buddy/backend/internal/models"
)

const tripColumns = `id, user_id, name, city, start_date, end_date, budget, activity_ids, status, created_at, updated_at`

type TripRepository struct {
	db *pgxpool.Pool
}

// NewTripRepository создает репозиторий поездок.
func NewTripRepository(db *pgxpool.Pool) *TripRepository {
	return &TripRepository{db: db}
}

// Create создает поездку в статусе PLANNED.
func (r *TripRepository) Create(ctx context.Context, userID uuid.UUID, name, city string, startDate, endDate time.Time, budget float64) (models.Trip, error) {
	var trip models.Trip

	err := r.db.QueryRow(ctx,
		`INSERT INTO trips (user_id, name, city, start_date, end_date, budget, activity_ids, status)
		 VALUES ($1, $2, $3, $4, $5, $6, '{}', $7)
		 RETURNING `+tripColumns,
		userID, name, city, startDate, endDate, budget, models.TripStatusPlanned,
	).Scan(tripFields(&trip)...)
	if err != nil {
		return trip, err
	}

	return trip, nil
}

// ListByUser возвращает поездки пользователя, новые первыми.
func (r *TripRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Trip, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+tripColumns+`
		 FROM trips
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTrips(rows)
}

// ListByUserAndCity возвращает поездки пользователя в указанный город.
func (r *TripRepository) ListByUserAndCity(ctx context.Context, userID uuid.UUID, city string) ([]models.Trip, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+tripColumns+`
		 FROM trips
		 WHERE user_id = $1 AND LOWER(city) = LOWER($2)
		 ORDER BY created_at DESC`,
		userID, city,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTrips(rows)
}

// GetByID возвращает поездку пользователя по идентификатору.
func (r *TripRepository) GetByID(ctx context.Context, userID, tripID uuid.UUID) (models.Trip, error) {
	var trip models.Trip

	err := r.db.QueryRow(ctx,
		`SELECT `+tripColumns+`
		 FROM trips
		 WHERE id = $1 AND user_id = $2`,
		tripID, userID,
	).Scan(tripFields(&trip)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trip, ErrNotFound
		}
		return trip, err
	}

	return trip, nil
}

// Update обновляет основные поля поездки.
func (r *TripRepository) Update(ctx context.Context, userID, tripID uuid.UUID, name, city string, startDate, endDate time.Time, budget float64) (models.Trip, error) {
	var trip models.Trip

	err := r.db.QueryRow(ctx,
		`UPDATE trips
		 SET name = $3,
		     city = $4,
		     start_date = $5,
		     end_date = $6,
		     budget = $7,
		     updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+tripColumns,
		tripID, userID, name, city, startDate, endDate, budget,
	).Scan(tripFields(&trip)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trip, ErrNotFound
		}
		return trip, err
	}

	return trip, nil
}

// Delete удаляет поездку пользователя.
func (r *TripRepository) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM trips WHERE id = $1 AND user_id = $2`,
		tripID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// AddActivity добавляет активность в поездку. Повторное добавление
// идемпотентно: список активностей не содержит дублей.
func (r *TripRepository) AddActivity(ctx context.Context, userID, tripID uuid.UUID, activityID int64) (models.Trip, error) {
	var trip models.Trip

	err := r.db.QueryRow(ctx,
		`UPDATE trips
		 SET activity_ids = CASE
		         WHEN activity_ids @> ARRAY[$3]::bigint[] THEN activity_ids
		         ELSE array_append(activity_ids, $3)
		     END,
		     updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+tripColumns,
		tripID, userID, activityID,
	).Scan(tripFields(&trip)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trip, ErrNotFound
		}
		return trip, err
	}

	return trip, nil
}

// UpdateStatus переводит поездку в новый статус.
func (r *TripRepository) UpdateStatus(ctx context.Context, userID, tripID uuid.UUID, status models.TripStatus) (models.Trip, error) {
	var trip models.Trip

	if !models.ValidTripStatus(status) {
		return trip, ErrInvalid
	}

	err := r.db.QueryRow(ctx,
		`UPDATE trips
		 SET status = $3, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+tripColumns,
		tripID, userID, status,
	).Scan(tripFields(&trip)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trip, ErrNotFound
		}
		return trip, err
	}

	return trip, nil
}

func tripFields(trip *models.Trip) []any {
	return []any{
		&trip.ID, &trip.UserID, &trip.Name, &trip.City,
		&trip.StartDate, &trip.EndDate, &trip.Budget,
		&trip.ActivityIDs, &trip.Status, &trip.CreatedAt, &trip.UpdatedAt,
	}
}

func scanTrips(rows pgx.Rows) ([]models.Trip, error) {
	var trips []models.Trip

	for rows.Next() {
		var trip models.Trip
		if err := rows.Scan(tripFields(&trip)...); err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}
