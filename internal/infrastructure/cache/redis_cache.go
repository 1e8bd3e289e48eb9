// Package cache implementa el puerto de cache de reportes: Redis cuando hay
// servidor configurado, Noop cuando no.
package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/tu-usuario/retail-ledger/internal/application/ports"
)

// RedisReportCache cachea reportes serializados en JSON con TTL fijo.
type RedisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisReportCache construye el cache contra un servidor Redis.
func NewRedisReportCache(addr, password string, db int, ttl time.Duration) *RedisReportCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisReportCache{client: client, ttl: ttl}
}

var _ ports.ReportCache = (*RedisReportCache)(nil)

// Ping verifica conectividad al arrancar.
func (c *RedisReportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra la conexión.
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

// Get deserializa el valor cacheado en dest; false sin error en cache miss.
func (c *RedisReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set serializa y guarda el valor con el TTL configurado.
func (c *RedisReportCache) Set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

// Invalidate borra las claves dadas.
func (c *RedisReportCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// NoopReportCache desactiva el cacheo: todo Get es miss.
type NoopReportCache struct{}

// NewNoopReportCache construye el cache nulo.
func NewNoopReportCache() *NoopReportCache { return &NoopReportCache{} }

var _ ports.ReportCache = (*NoopReportCache)(nil)

func (NoopReportCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NoopReportCache) Set(context.Context, string, any) error         { return nil }
func (NoopReportCache) Invalidate(context.Context, ...string) error    { return nil }
