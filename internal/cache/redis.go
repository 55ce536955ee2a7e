package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	models "github.com/skyfarehq/skyfare/internal"
)

// RedisCache stores serialized public flight pages with a TTL. Entries are
// never invalidated explicitly; staleness is bounded by the TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr, password string, db int, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		ttl:    ttl,
	}
}

func (c *RedisCache) GetFlightsPage(ctx context.Context, req models.PageRequest) (*models.FlightsPage, error) {
	data, err := c.client.Get(ctx, flightsPageKey(req)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var page models.FlightsPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *RedisCache) SetFlightsPage(ctx context.Context, req models.PageRequest, page *models.FlightsPage) error {
	payload, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsPageKey(req), payload, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func flightsPageKey(req models.PageRequest) string {
	return fmt.Sprintf("cache:flights:public:page:%d:limit:%d", req.Page, req.Limit)
}
