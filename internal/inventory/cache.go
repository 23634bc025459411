package inventory

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/quartohq/quarto-backend/pkg/logger"
)

const cacheDateLayout = "2006-01-02"

type availabilityCounter interface {
	CountAvailable(ctx context.Context, roomCategoryID uuid.UUID, checkIn, checkOut *time.Time) (int, error)
}

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	AvailabilityKey(roomCategoryID, checkIn, checkOut string) string
}

// CachedCounter wraps the counter with a best-effort redis cache for display
// reads (hotel-details pages). Cache failures fall through to the database and
// are logged, never returned; checkout must not use this type, it re-validates
// inside its own transaction.
type CachedCounter struct {
	counter availabilityCounter
	cache   cacheStore
	ttl     time.Duration
	logg    *logger.Logger
}

// NewCachedCounter builds the read-side wrapper.
func NewCachedCounter(counter availabilityCounter, cache cacheStore, ttl time.Duration, logg *logger.Logger) *CachedCounter {
	return &CachedCounter{counter: counter, cache: cache, ttl: ttl, logg: logg}
}

// CountAvailable serves windowed counts through the cache. Total-count mode
// (both dates nil) always hits the database.
func (c *CachedCounter) CountAvailable(ctx context.Context, roomCategoryID uuid.UUID, checkIn, checkOut *time.Time) (int, error) {
	if c.cache == nil || checkIn == nil || checkOut == nil {
		return c.counter.CountAvailable(ctx, roomCategoryID, checkIn, checkOut)
	}

	key := c.cache.AvailabilityKey(
		roomCategoryID.String(),
		checkIn.Format(cacheDateLayout),
		checkOut.Format(cacheDateLayout),
	)

	if cached, err := c.cache.Get(ctx, key); err == nil {
		if count, parseErr := strconv.Atoi(cached); parseErr == nil {
			return count, nil
		}
	}

	count, err := c.counter.CountAvailable(ctx, roomCategoryID, checkIn, checkOut)
	if err != nil {
		return 0, err
	}

	if setErr := c.cache.Set(ctx, key, strconv.Itoa(count), c.ttl); setErr != nil && c.logg != nil {
		c.logg.Warn(ctx, "availability cache write failed: "+setErr.Error())
	}
	return count, nil
}
