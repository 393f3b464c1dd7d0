// Package redis stores models in Redis with an optional TTL.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/jza/internal/logging"
	"github.com/aretw0/jza/pkg/domain"
)

// DefaultPrefix namespaces the keys of a Store.
const DefaultPrefix = "jza:model:"

// noExpiry is the index score of models saved without a TTL (2100-01-01).
const noExpiry = 4102444800

// Store implements ports.ModelStore using Redis.
// Each model is a JSON string key under prefix+"doc:"; a sorted set at
// prefix+"index", scored by expiry time, indexes them.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the expiration for models.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for models.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithLogger sets the logger used for index maintenance messages.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Documents live under prefix+"doc:" so no model name can reach the index key.
func (s *Store) key(name string) string {
	return s.prefix + "doc:" + name
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save stores the document and refreshes its index entry.
func (s *Store) Save(ctx context.Context, name string, doc *domain.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}

	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = noExpiry
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(name), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: name})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the document stored under name.
func (s *Store) Load(ctx context.Context, name string) (*domain.Document, error) {
	val, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, fmt.Errorf("%w: %s", domain.ErrModelNotFound, name)
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var doc domain.Document
	if err := json.Unmarshal(val, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidDocument, name, err)
	}
	return &doc, nil
}

// Delete removes the model and its index entry.
func (s *Store) Delete(ctx context.Context, name string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(name))
	pipe.ZRem(ctx, s.indexKey(), name)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// List prunes expired index entries and returns the remaining model names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	pruned, err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired models: %w", err)
	}
	if pruned > 0 {
		s.logger.Debug("pruned expired models", "count", pruned)
	}

	names, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	return names, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
