package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/laundryhub/pkg/repository"
)

// ErrDraftNotFound covers both unknown and expired drafts; callers cannot tell
// the difference and should restart the wizard either way.
var ErrDraftNotFound = errors.New("draft not found or expired")

// Cache is the slice of the Redis repository the draft store needs.
type Cache interface {
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	GetJSON(ctx context.Context, key string, dest interface{}) error
	Del(ctx context.Context, keys ...string) error
}

// Store persists drafts in Redis under a TTL. Every save refreshes the TTL, so
// an active customer never loses progress while an abandoned draft ages out.
type Store struct {
	cache Cache
	ttl   time.Duration
}

func NewStore(cache Cache, ttl time.Duration) *Store {
	return &Store{cache: cache, ttl: ttl}
}

func draftKey(id string) string {
	return fmt.Sprintf("draft:%s", id)
}

func (s *Store) Save(ctx context.Context, draft *Draft) error {
	draft.UpdatedAt = time.Now()
	if err := s.cache.SetJSON(ctx, draftKey(draft.ID), draft, s.ttl); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*Draft, error) {
	var draft Draft
	err := s.cache.GetJSON(ctx, draftKey(id), &draft)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	return &draft, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.cache.Del(ctx, draftKey(id))
}
