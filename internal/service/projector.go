package service

import (
	"context"

	"github.com/lingochat/memories-backend/internal/common"
	"github.com/lingochat/memories-backend/internal/domain"
)

// Projector joins stored memories with display fields at read time.
// Nothing it resolves is written back to the store.
type Projector struct {
	identity IdentityProvider
}

// NewProjector creates a Projector over an identity provider
func NewProjector(identity IdentityProvider) *Projector {
	return &Projector{identity: identity}
}

// Project resolves every participant of memories in one identity lookup
func (p *Projector) Project(ctx context.Context, memories []*domain.Memory) ([]*domain.MemoryResponse, error) {
	responses := make([]*domain.MemoryResponse, 0, len(memories))
	if len(memories) == 0 {
		return responses, nil
	}

	seen := make(map[string]struct{})
	var ids []string
	for _, m := range memories {
		for _, id := range m.ParticipantIDs() {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	fields, err := p.identity.ResolveDisplayFields(ctx, ids...)
	if err != nil {
		return nil, common.Unavailable(err)
	}

	for _, m := range memories {
		responses = append(responses, project(m, fields))
	}
	return responses, nil
}

// ProjectOne projects a single memory
func (p *Projector) ProjectOne(ctx context.Context, memory *domain.Memory) (*domain.MemoryResponse, error) {
	responses, err := p.Project(ctx, []*domain.Memory{memory})
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}

func project(m *domain.Memory, fields map[string]domain.DisplayFields) *domain.MemoryResponse {
	resp := &domain.MemoryResponse{
		ID:        m.ID,
		User:      fields[m.AuthorID].Summary(m.AuthorID),
		Content:   m.Content,
		Image:     m.Image,
		Likes:     make([]domain.LikerSummary, 0, len(m.Likes)),
		Comments:  make([]domain.CommentResponse, 0, len(m.Comments)),
		CreatedAt: m.CreatedAt,
	}

	for _, l := range m.Likes {
		resp.Likes = append(resp.Likes, domain.LikerSummary{ID: l.UserID, FullName: fields[l.UserID].FullName})
	}
	for _, c := range m.Comments {
		resp.Comments = append(resp.Comments, domain.CommentResponse{
			ID:        c.ID,
			User:      fields[c.AuthorID].Summary(c.AuthorID),
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}
	return resp
}
