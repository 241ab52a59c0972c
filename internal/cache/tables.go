// internal/cache/tables.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/lumenfab/kpi-dashboard/internal/config"
	"github.com/lumenfab/kpi-dashboard/internal/domain"
	"github.com/lumenfab/kpi-dashboard/internal/table"
	"github.com/redis/go-redis/v9"
)

const (
	tableKeyPrefix  = "tables:"
	defaultTableTTL = 12 * time.Hour
)

// TableStore holds the uploaded table snapshots between requests. The
// engine never reads it directly: callers fetch a snapshot once and pass
// it in by value.
type TableStore interface {
	Get(ctx context.Context, kind domain.TableKind) (*table.Table, bool, error)
	Set(ctx context.Context, kind domain.TableKind, t *table.Table) error
	Delete(ctx context.Context, kind domain.TableKind) error
	Kinds(ctx context.Context) ([]domain.TableKind, error)
}

// NewTableStore returns a redis-backed store when caching is enabled in
// config, or a process-local store otherwise.
func NewTableStore(cfg config.CacheConfig) (TableStore, error) {
	if !cfg.Enabled {
		return NewMemoryTableStore(), nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.TableTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = defaultTableTTL
	}

	return &redisTableStore{client: client, ttl: ttl}, nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{
		Addr:     cfg.RedisHost + ":" + cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

type redisTableStore struct {
	client *redis.Client
	ttl    time.Duration
}

func tableKey(kind domain.TableKind) string {
	return tableKeyPrefix + string(kind)
}

func (s *redisTableStore) Get(ctx context.Context, kind domain.TableKind) (*table.Table, bool, error) {
	payload, err := s.client.Get(ctx, tableKey(kind)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var t table.Table
	if err := json.Unmarshal(payload, &t); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached table %s: %w", kind, err)
	}
	return &t, true, nil
}

func (s *redisTableStore) Set(ctx context.Context, kind domain.TableKind, t *table.Table) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode table %s: %w", kind, err)
	}
	if err := s.client.Set(ctx, tableKey(kind), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *redisTableStore) Delete(ctx context.Context, kind domain.TableKind) error {
	if err := s.client.Del(ctx, tableKey(kind)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (s *redisTableStore) Kinds(ctx context.Context) ([]domain.TableKind, error) {
	var kinds []domain.TableKind
	for _, kind := range domain.AllTableKinds {
		n, err := s.client.Exists(ctx, tableKey(kind)).Result()
		if err != nil {
			return nil, fmt.Errorf("redis exists failed: %w", err)
		}
		if n > 0 {
			kinds = append(kinds, kind)
		}
	}
	return kinds, nil
}

// memoryTableStore is the single-process fallback.
type memoryTableStore struct {
	mu     sync.RWMutex
	tables map[domain.TableKind]*table.Table
}

func NewMemoryTableStore() TableStore {
	return &memoryTableStore{tables: make(map[domain.TableKind]*table.Table)}
}

func (s *memoryTableStore) Get(ctx context.Context, kind domain.TableKind) (*table.Table, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[kind]
	return t, ok, nil
}

func (s *memoryTableStore) Set(ctx context.Context, kind domain.TableKind, t *table.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[kind] = t
	return nil
}

func (s *memoryTableStore) Delete(ctx context.Context, kind domain.TableKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, kind)
	return nil
}

func (s *memoryTableStore) Kinds(ctx context.Context) ([]domain.TableKind, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var kinds []domain.TableKind
	for _, kind := range domain.AllTableKinds {
		if _, ok := s.tables[kind]; ok {
			kinds = append(kinds, kind)
		}
	}
	return kinds, nil
}
