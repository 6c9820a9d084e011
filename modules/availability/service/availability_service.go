package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"meetwise/core/cache"
	"meetwise/core/constants"
	"meetwise/core/errors"
	"meetwise/core/logger"
	"meetwise/modules/availability/dto"
	"meetwise/modules/availability/entity"
	"meetwise/modules/availability/repository"

	"github.com/google/uuid"
)

// AvailabilityService manages busy intervals and serves the batch fetch the
// scheduling pipeline relies on. Batch results are cached in redis with a
// short TTL; any interval write drops the whole batch keyspace since a write
// for one owner can invalidate many batch keys.
type AvailabilityService struct {
	repo  repository.AvailabilityRepositoryInterface
	cache cache.ICache
}

type AvailabilityServiceInterface interface {
	CreateInterval(ctx context.Context, ownerID uuid.UUID, req *dto.CreateBusyIntervalRequest) (*dto.BusyIntervalResponse, *errors.AppError)
	ListMyIntervals(ctx context.Context, ownerID uuid.UUID, req *dto.ListBusyIntervalsRequest) ([]dto.BusyIntervalResponse, *errors.AppError)
	DeleteInterval(ctx context.Context, ownerID uuid.UUID, intervalID uuid.UUID) *errors.AppError

	// ListForOwners is the event-store read used by scheduling searches.
	ListForOwners(ctx context.Context, ownerIDs []uuid.UUID, from, to time.Time) ([]entity.BusyInterval, error)
}

func NewAvailabilityService(repo repository.AvailabilityRepositoryInterface, c cache.ICache) AvailabilityServiceInterface {
	return &AvailabilityService{
		repo:  repo,
		cache: c,
	}
}

func (s *AvailabilityService) CreateInterval(ctx context.Context, ownerID uuid.UUID, req *dto.CreateBusyIntervalRequest) (*dto.BusyIntervalResponse, *errors.AppError) {
	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid start time format", err)
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid end time format", err)
	}
	if !endTime.After(startTime) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "end_time must be after start_time", nil)
	}

	created, err := s.repo.CreateInterval(ctx, &entity.BusyInterval{
		OwnerID:   ownerID,
		StartTime: startTime,
		EndTime:   endTime,
		Label:     req.Label,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create busy interval", err)
	}

	s.invalidateBatchCache(ctx)
	return dto.ToBusyIntervalResponse(created), nil
}

func (s *AvailabilityService) ListMyIntervals(ctx context.Context, ownerID uuid.UUID, req *dto.ListBusyIntervalsRequest) ([]dto.BusyIntervalResponse, *errors.AppError) {
	from := time.Now()
	to := from.AddDate(0, 0, 30)

	var err error
	if req.From != "" {
		from, err = time.Parse(time.RFC3339, req.From)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid from format", err)
		}
	}
	if req.To != "" {
		to, err = time.Parse(time.RFC3339, req.To)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid to format", err)
		}
	}

	intervals, err := s.repo.ListByOwner(ctx, ownerID, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list busy intervals", err)
	}

	result := make([]dto.BusyIntervalResponse, 0, len(intervals))
	for i := range intervals {
		result = append(result, *dto.ToBusyIntervalResponse(&intervals[i]))
	}
	return result, nil
}

func (s *AvailabilityService) DeleteInterval(ctx context.Context, ownerID uuid.UUID, intervalID uuid.UUID) *errors.AppError {
	existing, err := s.repo.GetIntervalByID(ctx, intervalID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to load busy interval", err)
	}
	if existing == nil {
		return errors.NewAppError(errors.ErrNotFound, "Busy interval not found", nil)
	}
	if existing.OwnerID != ownerID {
		return errors.NewAppError(errors.ErrForbidden, "Not authorized", nil)
	}

	if err := s.repo.DeleteInterval(ctx, intervalID, ownerID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete busy interval", err)
	}

	s.invalidateBatchCache(ctx)
	return nil
}

func (s *AvailabilityService) ListForOwners(ctx context.Context, ownerIDs []uuid.UUID, from, to time.Time) ([]entity.BusyInterval, error) {
	key := batchCacheKey(ownerIDs, from, to)

	if s.cache != nil {
		var cached []entity.BusyInterval
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("AvailabilityService:ListForOwners:CacheGet", "error", err)
		}
		if found {
			return cached, nil
		}
	}

	intervals, err := s.repo.ListForOwners(ctx, ownerIDs, from, to)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, intervals, constants.BusyBatchCacheTTL); err != nil {
			logger.Warn("AvailabilityService:ListForOwners:CacheSet", "error", err)
		}
	}

	return intervals, nil
}

func (s *AvailabilityService) invalidateBatchCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, constants.RedisKeyBusyBatch+"*"); err != nil {
		logger.Warn("AvailabilityService:invalidateBatchCache", "error", err)
	}
}

// batchCacheKey hashes the sorted owner set and the window so equivalent
// fetches share a cache entry regardless of participant order.
func batchCacheKey(ownerIDs []uuid.UUID, from, to time.Time) string {
	ids := make([]string, 0, len(ownerIDs))
	for _, id := range ownerIDs {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)

	h := sha256.New()
	for _, id := range ids {
		h.Write([]byte(id))
	}
	fmt.Fprintf(h, "|%d|%d", from.Unix(), to.Unix())

	return constants.RedisKeyBusyBatch + hex.EncodeToString(h.Sum(nil))[:32]
}
