package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/vastriantafyllou/goal-tracker/internal/config"
	"github.com/vastriantafyllou/goal-tracker/session"
)

// Redis persists the token under prefix+cookie name with the cookie max age as TTL.
type Redis struct {
	client redislib.UniversalClient
	prefix string
}

// NewRedis creates a Redis-backed token store. The store takes ownership of client.
func NewRedis(client redislib.UniversalClient, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// DialRedis connects to cfg.URL and fails unless the server answers a ping
// within timeout.
func DialRedis(ctx context.Context, cfg config.RedisConfig, prefix string, timeout time.Duration) (*Redis, error) {
	opts, err := redislib.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := redislib.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedis(client, prefix), nil
}

func (r *Redis) Load(ctx context.Context, policy session.Cookie) (string, error) {
	token, err := r.client.Get(ctx, r.key(policy.Name)).Result()
	if errors.Is(err, redislib.Nil) {
		return "", nil
	}
	return token, err
}

func (r *Redis) Save(ctx context.Context, token string, policy session.Cookie) error {
	// a zero TTL keeps the key without expiry
	return r.client.Set(ctx, r.key(policy.Name), token, policy.MaxAge).Err()
}

func (r *Redis) Delete(ctx context.Context, policy session.Cookie) error {
	return r.client.Del(ctx, r.key(policy.Name)).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) key(name string) string {
	return r.prefix + name
}
