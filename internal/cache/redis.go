package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/minhalawais/Stallion/config"
	"github.com/minhalawais/Stallion/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client   *redis.Client
	fleetTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, fleetTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:   redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		fleetTTL: fleetTTL,
	}
}

func (c *RedisCache) GetFleet(ctx context.Context) ([]domain.Vehicle, error) {
	data, err := c.client.Get(ctx, fleetKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var vehicles []domain.Vehicle
	if err := json.Unmarshal(data, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (c *RedisCache) SetFleet(ctx context.Context, vehicles []domain.Vehicle) error {
	payload, err := json.Marshal(vehicles)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, fleetKey(), payload, c.fleetTTL).Err()
}

func fleetKey() string {
	return "cache:fleet"
}
