package service

import (
	"context"

	"github.com/lingochat/memories-backend/internal/domain"
)

// EligibleAuthors returns {viewerID} ∪ friendIDs without duplicates, viewer first
func EligibleAuthors(viewerID string, friendIDs []string) []string {
	seen := make(map[string]struct{}, len(friendIDs)+1)
	authors := make([]string, 0, len(friendIDs)+1)
	for _, id := range append([]string{viewerID}, friendIDs...) {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		authors = append(authors, id)
	}
	return authors
}

// ListFeed returns the newest memories written by the viewer or their friends
func (s *memoryService) ListFeed(ctx context.Context, viewerID string, friendIDs []string) (resp []*domain.MemoryResponse, err error) {
	defer func() { observe("list_feed", err) }()

	memories, err := s.repo.ListByAuthors(ctx, EligibleAuthors(viewerID, friendIDs), s.opts.PageSize)
	if err != nil {
		s.logFailure(err, "list feed", 0, viewerID)
		return nil, err
	}
	return s.projector.Project(ctx, memories)
}

// ListByAuthor returns one author's memories, newest first
func (s *memoryService) ListByAuthor(ctx context.Context, authorID string) (resp []*domain.MemoryResponse, err error) {
	defer func() { observe("list_by_author", err) }()

	memories, err := s.repo.ListByAuthors(ctx, []string{authorID}, s.opts.ProfileLimit)
	if err != nil {
		s.logFailure(err, "list by author", 0, authorID)
		return nil, err
	}
	return s.projector.Project(ctx, memories)
}

// canView reports whether authorID's memories are in viewerID's feed
func (s *memoryService) canView(ctx context.Context, viewerID, authorID string) (bool, error) {
	if viewerID == authorID {
		return true, nil
	}
	friendIDs, err := s.identity.GetFriendIDs(ctx, viewerID)
	if err != nil {
		return false, err
	}
	for _, id := range friendIDs {
		if id == authorID {
			return true, nil
		}
	}
	return false, nil
}
