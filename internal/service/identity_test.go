package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/lingochat/memories-backend/internal/common"
	"github.com/lingochat/memories-backend/internal/domain"
	"github.com/lingochat/memories-backend/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryCache is an in-process cache.Service for tests
type memoryCache struct {
	entries map[string][]byte
	failGet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (m *memoryCache) GetUser(_ context.Context, userID string, dest interface{}) error {
	if m.failGet {
		return errors.New("connection refused")
	}
	raw, ok := m.entries[cache.PrefixUser+userID]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) SetUser(_ context.Context, userID string, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	m.entries[cache.PrefixUser+userID] = raw
	return nil
}

func (m *memoryCache) IsAvailable() bool            { return true }
func (m *memoryCache) Ping(_ context.Context) error { return nil }

func TestCachedIdentity_FallsThroughWithoutRedis(t *testing.T) {
	next := new(mockIdentity)
	provider := NewCachedIdentityProvider(next, cache.NewService(nil))
	assert.Same(t, next, provider)
}

func TestCachedIdentity_ReadThroughDisplayFields(t *testing.T) {
	next := new(mockIdentity)
	c := newMemoryCache()
	provider := NewCachedIdentityProvider(next, c)

	next.On("ResolveDisplayFields", mock.Anything, []string{"alice", "bob"}).
		Return(map[string]domain.DisplayFields{"alice": {FullName: "Alice Kim"}}, nil).Once()

	fields, err := provider.ResolveDisplayFields(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, "Alice Kim", fields["alice"].FullName)

	// alice is cached now, only bob is asked for again
	next.On("ResolveDisplayFields", mock.Anything, []string{"bob"}).
		Return(map[string]domain.DisplayFields{}, nil).Once()

	fields, err = provider.ResolveDisplayFields(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, "Alice Kim", fields["alice"].FullName)
	_, ok := fields["bob"]
	assert.False(t, ok)
	next.AssertExpectations(t)
}

func TestCachedIdentity_CacheErrorsFallBackToSource(t *testing.T) {
	next := new(mockIdentity)
	c := newMemoryCache()
	c.failGet = true
	provider := NewCachedIdentityProvider(next, c)

	next.On("ResolveDisplayFields", mock.Anything, []string{"alice"}).
		Return(map[string]domain.DisplayFields{"alice": {FullName: "Alice Kim"}}, nil)
	next.On("GetFriendIDs", mock.Anything, "alice").Return([]string{"bob"}, nil)

	fields, err := provider.ResolveDisplayFields(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice Kim", fields["alice"].FullName)

	ids, err := provider.GetFriendIDs(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, ids)
}

func TestCachedIdentity_FriendIDsAlwaysLive(t *testing.T) {
	next := new(mockIdentity)
	c := newMemoryCache()
	provider := NewCachedIdentityProvider(next, c)

	next.On("GetFriendIDs", mock.Anything, "alice").Return([]string{"bob", "carol"}, nil).Once()
	ids, err := provider.GetFriendIDs(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol"}, ids)

	// an unfriend is visible on the very next lookup
	next.On("GetFriendIDs", mock.Anything, "alice").Return([]string{"bob"}, nil).Once()
	ids, err = provider.GetFriendIDs(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, ids)

	next.AssertExpectations(t)
	assert.Empty(t, c.entries)
}

func TestCachedIdentity_SourceFailureIsUnavailable(t *testing.T) {
	next := new(mockIdentity)
	provider := NewCachedIdentityProvider(next, newMemoryCache())

	next.On("GetFriendIDs", mock.Anything, "alice").Return(nil, errors.New("db down"))

	_, err := provider.GetFriendIDs(ctx, "alice")
	assert.ErrorIs(t, err, common.ErrUnavailable)
}
