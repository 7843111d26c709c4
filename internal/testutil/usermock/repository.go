package usermock

import (
	"context"

	domain "facilitydesk/internal/domain/user"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	GetByUserIDFn      func(ctx context.Context, userID string) (*domain.User, error)
	ListActiveByRoleFn func(ctx context.Context, role domain.Role, sector string) ([]domain.User, error)
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) ListActiveByRole(ctx context.Context, role domain.Role, sector string) ([]domain.User, error) {
	if m.ListActiveByRoleFn != nil {
		return m.ListActiveByRoleFn(ctx, role, sector)
	}
	return nil, nil
}
