package resolution

import "context"

type Repository interface {
	Create(ctx context.Context, r *Resolution) error
	Save(ctx context.Context, r *Resolution) error
	GetByResolutionID(ctx context.Context, resolutionID string) (*Resolution, error)
	// GetActiveByComplaintID returns the resolution currently linked to the
	// complaint, i.e. the one whose id matches complaint.resolution_id.
	GetActiveByComplaintID(ctx context.Context, complaintID string) (*Resolution, error)
}
