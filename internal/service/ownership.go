package service

import (
	"context"

	"github.com/lingochat/memories-backend/internal/common"
)

// DeleteMemory permanently removes a memory and its comments.
// Only the author may delete; anyone else gets Forbidden and nothing changes.
func (s *memoryService) DeleteMemory(ctx context.Context, memoryID uint64, requesterID string) (err error) {
	defer func() { observe("delete", err) }()

	authorID, err := s.repo.FindAuthorID(ctx, memoryID)
	if err != nil {
		s.logFailure(err, "delete memory", memoryID, requesterID)
		return err
	}

	if authorID != requesterID {
		return common.ErrNotMemoryOwner
	}

	if err := s.repo.Delete(ctx, memoryID); err != nil {
		s.logFailure(err, "delete memory", memoryID, requesterID)
		return err
	}
	return nil
}
