package service

import (
	"context"

	"github.com/lingochat/memories-backend/internal/common"
	"github.com/lingochat/memories-backend/internal/domain"
	"github.com/lingochat/memories-backend/internal/repository"
	"github.com/lingochat/memories-backend/pkg/logger"
)

// MemoryService business logic for the memories feed
type MemoryService interface {
	// Visibility
	ListFeed(ctx context.Context, viewerID string, friendIDs []string) ([]*domain.MemoryResponse, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.MemoryResponse, error)

	// Creation
	CreateMemory(ctx context.Context, authorID, content string, image *string) (*domain.MemoryResponse, error)

	// Interactions
	ToggleLike(ctx context.Context, memoryID uint64, userID string) (*domain.MemoryResponse, error)
	AddComment(ctx context.Context, memoryID uint64, userID, content string) (*domain.MemoryResponse, error)

	// Ownership
	DeleteMemory(ctx context.Context, memoryID uint64, requesterID string) error
}

// Options tunes feed bounds and interaction checks
type Options struct {
	PageSize          int  // aggregate feed cap
	ProfileLimit      int  // author listing cap, 0 = unbounded
	EnforceVisibility bool // likes/comments require the memory to be in the caller's feed
}

// DefaultOptions mirrors the production configuration
func DefaultOptions() Options {
	return Options{PageSize: domain.FeedPageSize, EnforceVisibility: true}
}

type memoryService struct {
	repo      repository.MemoryRepository
	identity  IdentityProvider
	projector *Projector
	opts      Options
}

// NewMemoryService creates a new MemoryService
func NewMemoryService(repo repository.MemoryRepository, identity IdentityProvider, opts Options) MemoryService {
	if opts.PageSize <= 0 {
		opts.PageSize = domain.FeedPageSize
	}
	if opts.ProfileLimit < 0 {
		opts.ProfileLimit = 0
	}
	return &memoryService{
		repo:      repo,
		identity:  identity,
		projector: NewProjector(identity),
		opts:      opts,
	}
}

// CreateMemory validates and stores a new memory for authorID
func (s *memoryService) CreateMemory(ctx context.Context, authorID, content string, image *string) (resp *domain.MemoryResponse, err error) {
	defer func() { observe("create", err) }()

	trimmed, ok := domain.NormalizeContent(content)
	if !ok {
		return nil, common.ErrContentRequired
	}

	memory := &domain.Memory{
		AuthorID: authorID,
		Content:  trimmed,
		Image:    domain.NormalizeImage(image),
	}
	if err := s.repo.Create(ctx, memory); err != nil {
		s.logFailure(err, "create memory", 0, authorID)
		return nil, err
	}

	return s.projector.ProjectOne(ctx, memory)
}

// reload fetches the current state of a memory and projects it
func (s *memoryService) reload(ctx context.Context, memoryID uint64) (*domain.MemoryResponse, error) {
	memory, err := s.repo.FindByID(ctx, memoryID)
	if err != nil {
		return nil, err
	}
	return s.projector.ProjectOne(ctx, memory)
}

// logFailure logs store/collaborator failures; domain outcomes stay quiet
func (s *memoryService) logFailure(err error, action string, memoryID uint64, userID string) {
	if common.IsDomainError(err) {
		return
	}
	log := logger.WithUserID(userID)
	event := log.Error().Err(err)
	if memoryID != 0 {
		event = event.Uint64("memory_id", memoryID)
	}
	event.Msg(action + " failed")
}
