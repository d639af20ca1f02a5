package service

import (
	"context"
	"errors"

	"github.com/lingochat/memories-backend/internal/common"
	"github.com/lingochat/memories-backend/internal/domain"
	"github.com/lingochat/memories-backend/internal/repository"
	"github.com/lingochat/memories-backend/pkg/cache"
	"github.com/lingochat/memories-backend/pkg/logger"
)

// IdentityProvider is the boundary to the chat app's user and social graph data
type IdentityProvider interface {
	// ResolveDisplayFields returns display fields for the ids it knows; unknown ids are omitted
	ResolveDisplayFields(ctx context.Context, userIDs ...string) (map[string]domain.DisplayFields, error)
	GetFriendIDs(ctx context.Context, userID string) ([]string, error)
}

type dbIdentityProvider struct {
	users repository.UserRepository
}

// NewIdentityProvider reads identities straight from the user tables
func NewIdentityProvider(users repository.UserRepository) IdentityProvider {
	return &dbIdentityProvider{users: users}
}

func (p *dbIdentityProvider) ResolveDisplayFields(ctx context.Context, userIDs ...string) (map[string]domain.DisplayFields, error) {
	return p.users.FindDisplayFields(ctx, userIDs)
}

func (p *dbIdentityProvider) GetFriendIDs(ctx context.Context, userID string) ([]string, error) {
	return p.users.FindFriendIDs(ctx, userID)
}

type cachedIdentityProvider struct {
	next  IdentityProvider
	cache cache.Service
}

// NewCachedIdentityProvider puts a Redis read-through cache in front of next's display fields.
// Cached display fields may be stale for up to the cache TTL; friend ids are never cached.
func NewCachedIdentityProvider(next IdentityProvider, c cache.Service) IdentityProvider {
	if c == nil || !c.IsAvailable() {
		return next
	}
	return &cachedIdentityProvider{next: next, cache: c}
}

func (p *cachedIdentityProvider) ResolveDisplayFields(ctx context.Context, userIDs ...string) (map[string]domain.DisplayFields, error) {
	result := make(map[string]domain.DisplayFields, len(userIDs))
	var missing []string

	for _, id := range userIDs {
		var fields domain.DisplayFields
		err := p.cache.GetUser(ctx, id, &fields)
		if err == nil {
			result[id] = fields
			continue
		}
		if !errors.Is(err, cache.ErrMiss) {
			logger.GetLogger().Debug().Err(err).Str("user_id", id).Msg("display cache read failed")
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return result, nil
	}

	fetched, err := p.next.ResolveDisplayFields(ctx, missing...)
	if err != nil {
		return nil, common.Unavailable(err)
	}
	for id, fields := range fetched {
		result[id] = fields
		if err := p.cache.SetUser(ctx, id, fields); err != nil {
			logger.GetLogger().Debug().Err(err).Str("user_id", id).Msg("display cache write failed")
		}
	}
	return result, nil
}

// GetFriendIDs always reads the source so feed scoping follows friendship changes immediately
func (p *cachedIdentityProvider) GetFriendIDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := p.next.GetFriendIDs(ctx, userID)
	if err != nil {
		return nil, common.Unavailable(err)
	}
	return ids, nil
}
