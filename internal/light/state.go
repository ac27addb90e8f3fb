package light

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/saaga0h/jeeves-rgb/pkg/redis"
)

// ColorState is the last color published for a location
type ColorState struct {
	Action    string
	Hex       string
	Kelvin    int
	Source    string
	UpdatedAt time.Time
}

// StateStore persists ColorState in Redis hashes with a TTL
type StateStore struct {
	redis redis.Client
	ttl   time.Duration
}

// NewStateStore creates a new state store
func NewStateStore(redisClient redis.Client, ttl time.Duration) *StateStore {
	return &StateStore{
		redis: redisClient,
		ttl:   ttl,
	}
}

// Load returns the stored state, or nil if none exists
func (s *StateStore) Load(ctx context.Context, location string) (*ColorState, error) {
	fields, err := s.redis.HGetAll(ctx, redis.RGBStateKey(location))
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}

	state := &ColorState{
		Action: fields["action"],
		Hex:    fields["hex"],
		Source: fields["kelvin_source"],
	}
	if v := fields["kelvin"]; v != "" {
		if k, err := strconv.Atoi(v); err == nil {
			state.Kelvin = k
		}
	}
	if v := fields["updated_at"]; v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			state.UpdatedAt = ts
		}
	}

	return state, nil
}

// Save stores the state of a published command and refreshes its TTL
func (s *StateStore) Save(ctx context.Context, location string, cmd *RGBCommand) error {
	key := redis.RGBStateKey(location)

	err := s.redis.HSet(ctx, key, map[string]interface{}{
		"action":        cmd.Action,
		"hex":           cmd.Hex,
		"kelvin":        cmd.Kelvin,
		"kelvin_source": cmd.KelvinSource,
		"updated_at":    cmd.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to save color state: %w", err)
	}

	if err := s.redis.Expire(ctx, key, s.ttl); err != nil {
		return fmt.Errorf("failed to set color state TTL: %w", err)
	}

	return nil
}
