package resolutionmock

import (
	"context"

	domain "facilitydesk/internal/domain/resolution"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                 func(ctx context.Context, r *domain.Resolution) error
	SaveFn                   func(ctx context.Context, r *domain.Resolution) error
	GetByResolutionIDFn      func(ctx context.Context, resolutionID string) (*domain.Resolution, error)
	GetActiveByComplaintIDFn func(ctx context.Context, complaintID string) (*domain.Resolution, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Resolution) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, r *domain.Resolution) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByResolutionID(ctx context.Context, resolutionID string) (*domain.Resolution, error) {
	if m.GetByResolutionIDFn != nil {
		return m.GetByResolutionIDFn(ctx, resolutionID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetActiveByComplaintID(ctx context.Context, complaintID string) (*domain.Resolution, error) {
	if m.GetActiveByComplaintIDFn != nil {
		return m.GetActiveByComplaintIDFn(ctx, complaintID)
	}
	return nil, domain.ErrNotFound
}
