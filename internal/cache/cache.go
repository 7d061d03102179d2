package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Cache wraps a go-redis client with the two concerns the service caches:
// per-owner dashboard rollups and password-reset tokens.
type Cache struct {
	client *redis.Client
	log    *slog.Logger
}

type Config struct {
	Addr     string
	Password string
	DB       int
}

func New(cfg Config, log *slog.Logger) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Cache{client: client, log: log.With("component", "cache")}
}

func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func dashboardKey(ownerID uuid.UUID) string {
	return "dashboard:" + ownerID.String()
}

// GetDashboard loads a cached dashboard rollup into dest; the bool reports a
// hit. Cache failures are not fatal to the caller.
func (c *Cache) GetDashboard(ctx context.Context, ownerID uuid.UUID, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, dashboardKey(ownerID)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("redis get: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("unmarshal cached dashboard: %w", err)
	}
	return true, nil
}

func (c *Cache) SetDashboard(ctx context.Context, ownerID uuid.UUID, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal dashboard: %w", err)
	}
	return c.client.Set(ctx, dashboardKey(ownerID), data, ttl).Err()
}

// InvalidateDashboard drops the cached rollup after any product/meeting
// write. A failure here only makes the next read recompute, so it is logged
// and swallowed.
func (c *Cache) InvalidateDashboard(ctx context.Context, ownerID uuid.UUID) {
	if err := c.client.Del(ctx, dashboardKey(ownerID)).Err(); err != nil {
		c.log.Warn("dashboard invalidation failed", "owner", ownerID, "err", err)
	}
}

func resetKey(token string) string {
	return "pwreset:" + token
}

// StoreResetToken maps a password-reset token to the user id for ttl.
func (c *Cache) StoreResetToken(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	if err := c.client.Set(ctx, resetKey(token), userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}
	return nil
}

// ConsumeResetToken resolves and deletes a reset token; a miss returns
// uuid.Nil with no error.
func (c *Cache) ConsumeResetToken(ctx context.Context, token string) (uuid.UUID, error) {
	raw, err := c.client.GetDel(ctx, resetKey(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return uuid.Nil, nil
		}
		return uuid.Nil, fmt.Errorf("consume reset token: %w", err)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("bad reset token payload: %w", err)
	}
	return id, nil
}
