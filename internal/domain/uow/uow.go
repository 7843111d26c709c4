package uow

import (
	"context"

	"facilitydesk/internal/domain/complaint"
	"facilitydesk/internal/domain/resolution"
	"facilitydesk/internal/domain/user"
)

type Repos struct {
	Complaints  complaint.Repository
	Resolutions resolution.Repository
	Users       user.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the complaint row first, then pass it in. Every
	// workflow transition against an existing complaint goes through here so
	// concurrent calls serialize on the row.
	WithinComplaintTx(ctx context.Context, complaintID string, fn func(r Repos, c *complaint.Complaint) error) error
}
