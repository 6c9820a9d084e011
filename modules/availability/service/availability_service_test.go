package service

import (
	"context"
	"testing"
	"time"

	"meetwise/core/constants"
	"meetwise/core/errors"
	"meetwise/modules/availability/dto"
	"meetwise/modules/availability/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAvailabilityRepo struct {
	intervals map[uuid.UUID]*entity.BusyInterval
	listCalls int
	listErr   error
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{intervals: make(map[uuid.UUID]*entity.BusyInterval)}
}

func (f *fakeAvailabilityRepo) CreateInterval(ctx context.Context, interval *entity.BusyInterval) (*entity.BusyInterval, error) {
	created := *interval
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	f.intervals[created.ID] = &created
	return &created, nil
}

func (f *fakeAvailabilityRepo) GetIntervalByID(ctx context.Context, id uuid.UUID) (*entity.BusyInterval, error) {
	return f.intervals[id], nil
}

func (f *fakeAvailabilityRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]entity.BusyInterval, error) {
	var out []entity.BusyInterval
	for _, iv := range f.intervals {
		if iv.OwnerID == ownerID {
			out = append(out, *iv)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) ListForOwners(ctx context.Context, ownerIDs []uuid.UUID, from, to time.Time) ([]entity.BusyInterval, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []entity.BusyInterval
	for _, owner := range ownerIDs {
		for _, iv := range f.intervals {
			if iv.OwnerID == owner {
				out = append(out, *iv)
			}
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) DeleteInterval(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	delete(f.intervals, id)
	return nil
}

// fakeCache is an in-memory ICache good enough for hit/miss behavior
type fakeCache struct {
	entries map[string][]entity.BusyInterval
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]entity.BusyInterval)}
}

func (c *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if intervals, ok := value.([]entity.BusyInterval); ok {
		c.entries[key] = intervals
	}
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	intervals, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	if out, ok := dest.(*[]entity.BusyInterval); ok {
		*out = intervals
	}
	return true, nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func (c *fakeCache) DeleteByPattern(ctx context.Context, pattern string) error {
	c.deletes++
	c.entries = make(map[string][]entity.BusyInterval)
	return nil
}

func TestCreateIntervalValidation(t *testing.T) {
	svc := NewAvailabilityService(newFakeAvailabilityRepo(), nil)
	owner := uuid.New()

	cases := []struct {
		name string
		req  dto.CreateBusyIntervalRequest
	}{
		{"bad start", dto.CreateBusyIntervalRequest{StartTime: "tomorrow", EndTime: "2025-03-10T11:00:00Z"}},
		{"bad end", dto.CreateBusyIntervalRequest{StartTime: "2025-03-10T10:00:00Z", EndTime: "later"}},
		{"end before start", dto.CreateBusyIntervalRequest{StartTime: "2025-03-10T11:00:00Z", EndTime: "2025-03-10T10:00:00Z"}},
		{"zero length", dto.CreateBusyIntervalRequest{StartTime: "2025-03-10T10:00:00Z", EndTime: "2025-03-10T10:00:00Z"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, appErr := svc.CreateInterval(context.Background(), owner, &tc.req)
			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
		})
	}
}

func TestDeleteIntervalOwnerCheck(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	svc := NewAvailabilityService(repo, nil)
	owner := uuid.New()

	created, appErr := svc.CreateInterval(context.Background(), owner, &dto.CreateBusyIntervalRequest{
		StartTime: "2025-03-10T10:00:00Z",
		EndTime:   "2025-03-10T11:00:00Z",
		Label:     "Focus",
	})
	require.Nil(t, appErr)
	intervalID := uuid.MustParse(created.ID)

	appErr = svc.DeleteInterval(context.Background(), uuid.New(), intervalID)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	appErr = svc.DeleteInterval(context.Background(), owner, intervalID)
	assert.Nil(t, appErr)
}

func TestListForOwnersCacheHit(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	c := newFakeCache()
	svc := NewAvailabilityService(repo, c)

	owner := uuid.New()
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	_, err := svc.ListForOwners(context.Background(), []uuid.UUID{owner}, from, to)
	require.NoError(t, err)
	_, err = svc.ListForOwners(context.Background(), []uuid.UUID{owner}, from, to)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listCalls)
}

func TestListForOwnersWriteInvalidatesCache(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	c := newFakeCache()
	svc := NewAvailabilityService(repo, c)

	owner := uuid.New()
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	out, err := svc.ListForOwners(context.Background(), []uuid.UUID{owner}, from, to)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, appErr := svc.CreateInterval(context.Background(), owner, &dto.CreateBusyIntervalRequest{
		StartTime: "2025-03-10T10:00:00Z",
		EndTime:   "2025-03-10T11:00:00Z",
		Label:     "Standup",
	})
	require.Nil(t, appErr)
	assert.Equal(t, 1, c.deletes)

	out, err = svc.ListForOwners(context.Background(), []uuid.UUID{owner}, from, to)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Standup", out[0].Label)
	assert.Equal(t, 2, repo.listCalls)
}

func TestBatchCacheKeyOrderInsensitive(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 5)

	k1 := batchCacheKey([]uuid.UUID{a, b, c}, from, to)
	k2 := batchCacheKey([]uuid.UUID{c, a, b}, from, to)
	assert.Equal(t, k1, k2)

	k3 := batchCacheKey([]uuid.UUID{a, b}, from, to)
	assert.NotEqual(t, k1, k3)

	k4 := batchCacheKey([]uuid.UUID{a, b, c}, from, to.AddDate(0, 0, 1))
	assert.NotEqual(t, k1, k4)

	assert.True(t, len(k1) > len(constants.RedisKeyBusyBatch))
	assert.Contains(t, k1, constants.RedisKeyBusyBatch)
}
