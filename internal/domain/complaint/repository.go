package complaint

import (
	"context"
	"time"
)

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	Sector           Sector
	AssignedWorkerID string
	Status           Status
	StartDate        time.Time
	EndDate          time.Time
	// Search matches human_id, category, sector, location_ref and description.
	Search   string
	Page     int
	PageSize int
}

// Page is the stable listing envelope.
type Page struct {
	Items      []Complaint `json:"items"`
	TotalCount int64       `json:"total_count"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
}

type StatusCounts struct {
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
	Rejected   int64 `json:"rejected"`
}

type Repository interface {
	Create(ctx context.Context, c *Complaint) error
	Save(ctx context.Context, c *Complaint) error
	GetByComplaintID(ctx context.Context, complaintID string) (*Complaint, error)
	// CountRecent counts complaints for (locationRef, sector) created at or
	// after since. The duplicate-submission guard calls this while holding
	// its lock.
	CountRecent(ctx context.Context, locationRef string, sector Sector, since time.Time) (int64, error)
	List(ctx context.Context, f Filter) (*Page, error)
	CountByStatus(ctx context.Context) (*StatusCounts, error)
}
