package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/yahtzee-go/internal/model"
	"github.com/mcoot/yahtzee-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Table operations

func (s *Storage) SaveTable(ctx context.Context, table *model.Table) error {
	data, err := json.Marshal(table)
	if err != nil {
		return err
	}

	// Saving keeps the active pointer alive as long as the table
	pipe := s.client.Pipeline()
	pipe.Set(ctx, tableKey(table.ID), data, s.cfg.TableTTL)
	pipe.Expire(ctx, activeTableKey(), s.cfg.TableTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetTable(ctx context.Context, id model.TableID) (*model.Table, error) {
	data, err := s.client.Get(ctx, tableKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrTableNotFound
		}
		return nil, err
	}

	var table model.Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	return &table, nil
}

func (s *Storage) DeleteTable(ctx context.Context, id model.TableID) error {
	active, err := s.client.Get(ctx, activeTableKey()).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, tableKey(id))
	if active == string(id) {
		pipe.Del(ctx, activeTableKey())
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Active table operations

func (s *Storage) SetActiveTable(ctx context.Context, id model.TableID) error {
	return s.client.Set(ctx, activeTableKey(), string(id), s.cfg.TableTTL).Err()
}

func (s *Storage) GetActiveTable(ctx context.Context) (model.TableID, error) {
	id, err := s.client.Get(ctx, activeTableKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrTableNotFound
		}
		return "", err
	}
	return model.TableID(id), nil
}

func (s *Storage) ClearActiveTable(ctx context.Context) error {
	return s.client.Del(ctx, activeTableKey()).Err()
}
