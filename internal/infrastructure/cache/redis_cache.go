package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
)

const settingsKey = "sachet:settings"

// NewRedisClient opens a client and checks the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

type RedisSettingsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSettingsCache(client *redis.Client, ttl time.Duration) *RedisSettingsCache {
	return &RedisSettingsCache{client: client, ttl: ttl}
}

func (c *RedisSettingsCache) Get(ctx context.Context) (*entity.Settings, bool, error) {
	val, err := c.client.Get(ctx, settingsKey).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var settings entity.Settings
	if err := json.Unmarshal([]byte(val), &settings); err != nil {
		return nil, false, err
	}
	settings.ID = entity.SettingsID
	return &settings, true, nil
}

func (c *RedisSettingsCache) Set(ctx context.Context, settings *entity.Settings) error {
	if settings == nil {
		return nil
	}
	payload, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, settingsKey, payload, c.ttl).Err()
}

func (c *RedisSettingsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, settingsKey).Err()
}
