package event

import (
	"context"

	"github.com/felicityfest/felicity-backend/internal/domain"
)

func clampPage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

func (s *Service) ListPublished(ctx context.Context, page, pageSize int) ([]*domain.Event, int, error) {
	page, pageSize = clampPage(page, pageSize)
	return s.repo.ListPublished(ctx, page, pageSize)
}

func (s *Service) ListMine(ctx context.Context, actorID, actorRole string, page, pageSize int) ([]*domain.Event, int, error) {
	if !isOrganizer(actorRole) && !isAdmin(actorRole) {
		return nil, 0, domain.ErrForbidden("only organizers can list their events")
	}
	page, pageSize = clampPage(page, pageSize)
	return s.repo.ListByOrganizer(ctx, actorID, page, pageSize)
}
