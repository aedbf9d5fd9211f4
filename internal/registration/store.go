// AngelaMos | 2026
// store.go

package registration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/liftingtracker/backend/internal/core"
)

const draftKeyPrefix = "regdraft:"

// Store keeps drafts in Redis keyed by the opaque wizard session id.
// Every write refreshes the TTL, so abandoned drafts expire on their
// own.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		redis: client,
		ttl:   ttl,
	}
}

func (s *Store) Get(ctx context.Context, sessionID string) (*Draft, error) {
	raw, err := s.redis.Get(ctx, draftKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("load draft: %w", err)
	}

	var draft Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}

	return &draft, nil
}

func (s *Store) Save(ctx context.Context, sessionID string, draft *Draft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	if err := s.redis.Set(ctx, draftKeyPrefix+sessionID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, draftKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}

	return nil
}

var _ DraftStore = (*Store)(nil)
