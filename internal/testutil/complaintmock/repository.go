package complaintmock

import (
	"context"
	"time"

	domain "facilitydesk/internal/domain/complaint"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only fill in the methods a test needs.
type Repo struct {
	CreateFn           func(ctx context.Context, c *domain.Complaint) error
	SaveFn             func(ctx context.Context, c *domain.Complaint) error
	GetByComplaintIDFn func(ctx context.Context, complaintID string) (*domain.Complaint, error)
	CountRecentFn      func(ctx context.Context, locationRef string, sector domain.Sector, since time.Time) (int64, error)
	ListFn             func(ctx context.Context, f domain.Filter) (*domain.Page, error)
	CountByStatusFn    func(ctx context.Context) (*domain.StatusCounts, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Complaint) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, c *domain.Complaint) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByComplaintID(ctx context.Context, complaintID string) (*domain.Complaint, error) {
	if m.GetByComplaintIDFn != nil {
		return m.GetByComplaintIDFn(ctx, complaintID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) CountRecent(ctx context.Context, locationRef string, sector domain.Sector, since time.Time) (int64, error) {
	if m.CountRecentFn != nil {
		return m.CountRecentFn(ctx, locationRef, sector, since)
	}
	return 0, nil
}

func (m *Repo) List(ctx context.Context, f domain.Filter) (*domain.Page, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return &domain.Page{Page: f.Page, PageSize: f.PageSize}, nil
}

func (m *Repo) CountByStatus(ctx context.Context) (*domain.StatusCounts, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx)
	}
	return &domain.StatusCounts{}, nil
}
