package service

import (
	"context"

	"github.com/lingochat/memories-backend/internal/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock MemoryRepository ---

type mockMemoryRepo struct {
	mock.Mock
}

func (m *mockMemoryRepo) Create(ctx context.Context, memory *domain.Memory) error {
	args := m.Called(ctx, memory)
	return args.Error(0)
}

func (m *mockMemoryRepo) FindByID(ctx context.Context, id uint64) (*domain.Memory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Memory), args.Error(1)
}

func (m *mockMemoryRepo) FindAuthorID(ctx context.Context, id uint64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *mockMemoryRepo) ListByAuthors(ctx context.Context, authorIDs []string, limit int) ([]*domain.Memory, error) {
	args := m.Called(ctx, authorIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Memory), args.Error(1)
}

func (m *mockMemoryRepo) ToggleLike(ctx context.Context, memoryID uint64, userID string) (bool, error) {
	args := m.Called(ctx, memoryID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockMemoryRepo) AppendComment(ctx context.Context, comment *domain.MemoryComment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *mockMemoryRepo) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

// --- Mock IdentityProvider ---

type mockIdentity struct {
	mock.Mock
}

func (m *mockIdentity) ResolveDisplayFields(ctx context.Context, userIDs ...string) (map[string]domain.DisplayFields, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.DisplayFields), args.Error(1)
}

func (m *mockIdentity) GetFriendIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// stubIdentity answers every lookup from fixed maps
type stubIdentity struct {
	users   map[string]domain.DisplayFields
	friends map[string][]string
}

func (s *stubIdentity) ResolveDisplayFields(_ context.Context, userIDs ...string) (map[string]domain.DisplayFields, error) {
	out := make(map[string]domain.DisplayFields)
	for _, id := range userIDs {
		if f, ok := s.users[id]; ok {
			out[id] = f
		}
	}
	return out, nil
}

func (s *stubIdentity) GetFriendIDs(_ context.Context, userID string) ([]string, error) {
	return s.friends[userID], nil
}

func newStubIdentity() *stubIdentity {
	return &stubIdentity{
		users: map[string]domain.DisplayFields{
			"alice": {FullName: "Alice Kim", ProfilePic: "https://cdn.test/alice.png"},
			"bob":   {FullName: "Bob Lee", ProfilePic: "https://cdn.test/bob.png"},
			"carol": {FullName: "Carol Diaz"},
		},
		friends: map[string][]string{
			"alice": {"bob"},
			"bob":   {"alice"},
		},
	}
}
