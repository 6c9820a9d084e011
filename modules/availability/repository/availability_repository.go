package repository

import (
	"context"
	"database/sql"
	"time"

	"meetwise/core/database"
	"meetwise/core/logger"
	"meetwise/modules/availability/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AvailabilityRepository handles busy interval database operations
type AvailabilityRepository struct {
	DB database.IDatabase
}

func NewAvailabilityRepository(db database.IDatabase) *AvailabilityRepository {
	return &AvailabilityRepository{DB: db}
}

// AvailabilityRepositoryInterface defines the repository contract
type AvailabilityRepositoryInterface interface {
	CreateInterval(ctx context.Context, interval *entity.BusyInterval) (*entity.BusyInterval, error)
	GetIntervalByID(ctx context.Context, id uuid.UUID) (*entity.BusyInterval, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]entity.BusyInterval, error)
	ListForOwners(ctx context.Context, ownerIDs []uuid.UUID, from, to time.Time) ([]entity.BusyInterval, error)
	DeleteInterval(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
}

func (r *AvailabilityRepository) CreateInterval(ctx context.Context, interval *entity.BusyInterval) (*entity.BusyInterval, error) {
	query := `
		INSERT INTO busy_intervals (owner_id, start_time, end_time, label)
		VALUES ($1, $2, $3, $4)
		RETURNING id, owner_id, start_time, end_time, label, created_at
	`

	var created entity.BusyInterval
	err := r.DB.GetContext(ctx, &created, query,
		interval.OwnerID, interval.StartTime, interval.EndTime, interval.Label)
	if err != nil {
		logger.Error("AvailabilityRepository:CreateInterval", err)
		return nil, err
	}

	return &created, nil
}

func (r *AvailabilityRepository) GetIntervalByID(ctx context.Context, id uuid.UUID) (*entity.BusyInterval, error) {
	query := `
		SELECT id, owner_id, start_time, end_time, label, created_at
		FROM busy_intervals WHERE id = $1
	`

	var interval entity.BusyInterval
	err := r.DB.GetContext(ctx, &interval, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AvailabilityRepository:GetIntervalByID", err)
		return nil, err
	}

	return &interval, nil
}

func (r *AvailabilityRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]entity.BusyInterval, error) {
	query := `
		SELECT id, owner_id, start_time, end_time, label, created_at
		FROM busy_intervals
		WHERE owner_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time
	`

	var intervals []entity.BusyInterval
	err := r.DB.SelectContext(ctx, &intervals, query, ownerID, from, to)
	if err != nil {
		logger.Error("AvailabilityRepository:ListByOwner", err)
		return nil, err
	}

	return intervals, nil
}

// ListForOwners is the batch fetch behind a slot search: one query for every
// requested participant over the whole date range. The overlap predicate is
// half-open, matching the engine's interval semantics.
func (r *AvailabilityRepository) ListForOwners(ctx context.Context, ownerIDs []uuid.UUID, from, to time.Time) ([]entity.BusyInterval, error) {
	query := `
		SELECT id, owner_id, start_time, end_time, label, created_at
		FROM busy_intervals
		WHERE owner_id = ANY($1) AND start_time < $3 AND end_time > $2
		ORDER BY owner_id, start_time
	`

	ids := make([]string, 0, len(ownerIDs))
	for _, id := range ownerIDs {
		ids = append(ids, id.String())
	}

	var intervals []entity.BusyInterval
	err := r.DB.SelectContext(ctx, &intervals, query, pq.Array(ids), from, to)
	if err != nil {
		logger.Error("AvailabilityRepository:ListForOwners", err)
		return nil, err
	}

	return intervals, nil
}

func (r *AvailabilityRepository) DeleteInterval(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	query := `DELETE FROM busy_intervals WHERE id = $1 AND owner_id = $2`
	err := r.DB.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		logger.Error("AvailabilityRepository:DeleteInterval", err)
		return err
	}
	return nil
}
