package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mecanica/backend/internal/domain/partner"
	"github.com/mecanica/backend/internal/domain/shared"
)

const clientKeyPrefix = "client:id:"

// CachedClientRepository is a read-through cache in front of a
// partner.ClientRepository. Client records back every saga notification, so
// ID lookups dominate the read load. Cache failures degrade to the inner
// repository; they are never surfaced to callers.
type CachedClientRepository struct {
	inner  partner.ClientRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedClientRepository creates a new CachedClientRepository
func NewCachedClientRepository(inner partner.ClientRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedClientRepository {
	return &CachedClientRepository{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// FindByID finds a client by ID, serving from cache when possible
func (r *CachedClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	key := clientKeyPrefix + id.String()

	if data, err := r.client.Get(ctx, key).Bytes(); err == nil {
		var cached partner.Client
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		// Corrupt entry; drop it and fall through to the repository
		r.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("client cache read failed", zap.String("key", key), zap.Error(err))
	}

	client, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.store(ctx, key, client)
	return client, nil
}

// FindByDocument finds a client by document number. Document lookups are
// rare, so they always hit the repository.
func (r *CachedClientRepository) FindByDocument(ctx context.Context, document string) (*partner.Client, error) {
	return r.inner.FindByDocument(ctx, document)
}

// FindAll finds all clients matching the filter, bypassing the cache
func (r *CachedClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Client, error) {
	return r.inner.FindAll(ctx, filter)
}

// Save persists the client and invalidates its cache entry
func (r *CachedClientRepository) Save(ctx context.Context, client *partner.Client) error {
	if err := r.inner.Save(ctx, client); err != nil {
		return err
	}
	if err := r.client.Del(ctx, clientKeyPrefix+client.ID.String()).Err(); err != nil {
		r.logger.Warn("client cache invalidation failed",
			zap.String("client_id", client.ID.String()),
			zap.Error(err),
		)
	}
	return nil
}

func (r *CachedClientRepository) store(ctx context.Context, key string, client *partner.Client) {
	data, err := json.Marshal(client)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Warn("client cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Ensure CachedClientRepository implements partner.ClientRepository
var _ partner.ClientRepository = (*CachedClientRepository)(nil)
