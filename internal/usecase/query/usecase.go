// Package query serves the read side: role-scoped listings with filters and
// pagination, complaint details, the admin dashboard counts and the
// technician directory used by assignment.
package query

import (
	"context"
	"time"

	"facilitydesk/internal/apperr"
	"facilitydesk/internal/domain/complaint"
	"facilitydesk/internal/domain/resolution"
	"facilitydesk/internal/domain/user"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type Usecase struct {
	complaints  complaint.Repository
	resolutions resolution.Repository
	users       user.Repository
}

func NewUsecase(complaints complaint.Repository, resolutions resolution.Repository, users user.Repository) *Usecase {
	return &Usecase{complaints: complaints, resolutions: resolutions, users: users}
}

type ListInput struct {
	Status    complaint.Status
	StartDate time.Time
	EndDate   time.Time
	Search    string
	Page      int
	PageSize  int
}

// ListComplaints applies role scoping on top of the caller's filters: a
// sectoradmin only sees their sector, a technician only their assignments.
func (u *Usecase) ListComplaints(ctx context.Context, in ListInput, actor *user.User) (*complaint.Page, error) {
	if actor == nil {
		return nil, apperr.Unauthorized("authentication required")
	}
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize < 1 {
		in.PageSize = defaultPageSize
	}
	if in.PageSize > maxPageSize {
		in.PageSize = maxPageSize
	}
	if in.Status != "" && !validStatus(in.Status) {
		return nil, apperr.Validationf("unknown status %q", in.Status)
	}

	f := complaint.Filter{
		Status:    in.Status,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Search:    in.Search,
		Page:      in.Page,
		PageSize:  in.PageSize,
	}
	switch actor.Role {
	case user.RoleSuperAdmin:
	case user.RoleSectorAdmin:
		f.Sector = complaint.Sector(actor.Sector)
	case user.RoleTechnician:
		f.AssignedWorkerID = actor.UserID
	default:
		return nil, apperr.Forbidden("role is not allowed to list complaints")
	}
	return u.complaints.List(ctx, f)
}

type ComplaintDetails struct {
	Complaint  *complaint.Complaint   `json:"complaint"`
	Resolution *resolution.Resolution `json:"resolution,omitempty"`
}

// GetComplaint returns one complaint with its active resolution, enforcing
// the same scoping rules as ListComplaints.
func (u *Usecase) GetComplaint(ctx context.Context, complaintID string, actor *user.User) (*ComplaintDetails, error) {
	if actor == nil {
		return nil, apperr.Unauthorized("authentication required")
	}
	c, err := u.complaints.GetByComplaintID(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	switch actor.Role {
	case user.RoleSuperAdmin:
	case user.RoleSectorAdmin:
		if actor.Sector != string(c.Sector) {
			return nil, apperr.Forbidden("complaint belongs to a different sector")
		}
	case user.RoleTechnician:
		if c.AssignedWorkerID != actor.UserID {
			return nil, apperr.Forbidden("complaint is not assigned to this technician")
		}
	default:
		return nil, apperr.Forbidden("role is not allowed to view complaints")
	}

	out := &ComplaintDetails{Complaint: c}
	if c.ResolutionID != "" {
		res, err := u.resolutions.GetActiveByComplaintID(ctx, c.ComplaintID)
		if err != nil {
			return nil, err
		}
		out.Resolution = res
	}
	return out, nil
}

type DashboardOverview struct {
	StatusCounts  *complaint.StatusCounts `json:"status_counts"`
	ActiveSectors int                     `json:"active_sectors"`
}

// DashboardOverview aggregates complaint counts per status and the number of
// sectors that currently have an active sectoradmin.
func (u *Usecase) DashboardOverview(ctx context.Context, actor *user.User) (*DashboardOverview, error) {
	if actor == nil {
		return nil, apperr.Unauthorized("authentication required")
	}
	if actor.Role != user.RoleSuperAdmin && actor.Role != user.RoleSectorAdmin {
		return nil, apperr.Forbidden("role is not allowed to view the dashboard")
	}

	counts, err := u.complaints.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	admins, err := u.users.ListActiveByRole(ctx, user.RoleSectorAdmin, "")
	if err != nil {
		return nil, err
	}
	sectors := make(map[string]struct{}, len(admins))
	for _, a := range admins {
		if a.Sector != "" {
			sectors[a.Sector] = struct{}{}
		}
	}
	return &DashboardOverview{StatusCounts: counts, ActiveSectors: len(sectors)}, nil
}

// ListTechnicians returns active technicians for a sector so an admin can
// pick an assignee. A sectoradmin is pinned to their own sector.
func (u *Usecase) ListTechnicians(ctx context.Context, sector string, actor *user.User) ([]user.User, error) {
	if actor == nil {
		return nil, apperr.Unauthorized("authentication required")
	}
	switch actor.Role {
	case user.RoleSuperAdmin:
	case user.RoleSectorAdmin:
		sector = actor.Sector
	default:
		return nil, apperr.Forbidden("role is not allowed to list technicians")
	}
	return u.users.ListActiveByRole(ctx, user.RoleTechnician, sector)
}

func validStatus(s complaint.Status) bool {
	switch s {
	case complaint.StatusPending, complaint.StatusInProgress, complaint.StatusResolved, complaint.StatusRejected:
		return true
	}
	return false
}
