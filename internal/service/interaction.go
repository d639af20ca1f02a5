package service

import (
	"context"

	"github.com/lingochat/memories-backend/internal/common"
	"github.com/lingochat/memories-backend/internal/domain"
)

// ensureReachable rejects mutations on memories outside the caller's feed.
// A hidden memory reports NotFound so its existence is not disclosed.
func (s *memoryService) ensureReachable(ctx context.Context, memoryID uint64, userID string) error {
	if !s.opts.EnforceVisibility {
		return nil
	}
	authorID, err := s.repo.FindAuthorID(ctx, memoryID)
	if err != nil {
		return err
	}
	visible, err := s.canView(ctx, userID, authorID)
	if err != nil {
		return common.Unavailable(err)
	}
	if !visible {
		return common.ErrMemoryNotFound
	}
	return nil
}

// ToggleLike likes the memory for userID, or unlikes it when already liked.
// It is not safe to retry blindly: a retried toggle may flip twice.
func (s *memoryService) ToggleLike(ctx context.Context, memoryID uint64, userID string) (resp *domain.MemoryResponse, err error) {
	defer func() { observe("toggle_like", err) }()

	if err := s.ensureReachable(ctx, memoryID, userID); err != nil {
		s.logFailure(err, "toggle like", memoryID, userID)
		return nil, err
	}

	if _, err := s.repo.ToggleLike(ctx, memoryID, userID); err != nil {
		s.logFailure(err, "toggle like", memoryID, userID)
		return nil, err
	}

	return s.reload(ctx, memoryID)
}

// AddComment appends a trimmed comment by userID to the memory
func (s *memoryService) AddComment(ctx context.Context, memoryID uint64, userID, content string) (resp *domain.MemoryResponse, err error) {
	defer func() { observe("add_comment", err) }()

	trimmed, ok := domain.NormalizeContent(content)
	if !ok {
		return nil, common.ErrCommentRequired
	}

	if err := s.ensureReachable(ctx, memoryID, userID); err != nil {
		s.logFailure(err, "add comment", memoryID, userID)
		return nil, err
	}

	comment := &domain.MemoryComment{
		MemoryID: memoryID,
		AuthorID: userID,
		Content:  trimmed,
	}
	if err := s.repo.AppendComment(ctx, comment); err != nil {
		s.logFailure(err, "add comment", memoryID, userID)
		return nil, err
	}

	return s.reload(ctx, memoryID)
}
