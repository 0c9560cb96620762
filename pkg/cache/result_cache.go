package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jakechorley/timetable-scheduler/pkg/core/scheduler"
)

// ErrCacheMiss is returned when no cached result exists for a key
var ErrCacheMiss = errors.New("cache miss")

const keyPrefix = "timetable:result:"

// ResultCache stores scheduling outcomes in Redis keyed by an input fingerprint.
// A nil client turns every call into a miss or a no-op.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewResultCache constructs a result cache
func NewResultCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ResultCache {
	return &ResultCache{client: client, ttl: ttl, logger: logger}
}

// Enabled reports whether a Redis client is configured
func (c *ResultCache) Enabled() bool {
	return c != nil && c.client != nil
}

// Get returns the cached outcome for the fingerprint
func (c *ResultCache) Get(ctx context.Context, fingerprint string) (*scheduler.ScheduleOutcome, error) {
	if !c.Enabled() {
		return nil, ErrCacheMiss
	}

	key := keyPrefix + fingerprint
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	var outcome scheduler.ScheduleOutcome
	if err := json.Unmarshal(raw, &outcome); err != nil {
		return nil, fmt.Errorf("unmarshal cache value for %s: %w", key, err)
	}

	c.logger.Debug("Result cache hit", zap.String("key", key))
	return &outcome, nil
}

// Set stores the outcome under the fingerprint with the configured TTL
func (c *ResultCache) Set(ctx context.Context, fingerprint string, outcome *scheduler.ScheduleOutcome) error {
	if !c.Enabled() {
		return nil
	}

	key := keyPrefix + fingerprint
	payload, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	c.logger.Debug("Result cached", zap.String("key", key), zap.Duration("ttl", c.ttl))
	return nil
}

// Fingerprint identifies a scheduling input. Subject order does not matter; room order
// does, since it decides the candidate scan order.
func Fingerprint(subjects []scheduler.Subject, rooms []scheduler.Room, weights scheduler.ScoreWeights) (string, error) {
	payload, err := json.Marshal(struct {
		Subjects []scheduler.Subject    `json:"subjects"`
		Rooms    []scheduler.Room       `json:"rooms"`
		Weights  scheduler.ScoreWeights `json:"weights"`
	}{
		Subjects: scheduler.OrderSubjects(subjects),
		Rooms:    rooms,
		Weights:  weights,
	})
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint schedule input: %w", err)
	}

	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
