package mysql

import (
	"context"
	"errors"
	"time"

	complaintDomain "facilitydesk/internal/domain/complaint"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ComplaintRepository struct{ db *gorm.DB }

func NewComplaintRepository(db *gorm.DB) *ComplaintRepository { return &ComplaintRepository{db: db} }

func (r *ComplaintRepository) Create(ctx context.Context, c *complaintDomain.Complaint) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ComplaintRepository) Save(ctx context.Context, c *complaintDomain.Complaint) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ComplaintRepository) GetByComplaintID(ctx context.Context, complaintID string) (*complaintDomain.Complaint, error) {
	var out complaintDomain.Complaint
	res := r.db.WithContext(ctx).Where("complaint_id = ?", complaintID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, complaintDomain.ErrNotFound
	}
	return &out, res.Error
}

// GetByComplaintIDForUpdate locks the row for the duration of the enclosing
// transaction; the UoW calls it before every transition.
func (r *ComplaintRepository) GetByComplaintIDForUpdate(ctx context.Context, complaintID string) (*complaintDomain.Complaint, error) {
	var out complaintDomain.Complaint
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("complaint_id = ?", complaintID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, complaintDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *ComplaintRepository) CountRecent(ctx context.Context, locationRef string, sector complaintDomain.Sector, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&complaintDomain.Complaint{}).
		Where("location_ref = ? AND sector = ? AND created_at >= ?", locationRef, sector, since).
		Count(&n).Error
	return n, err
}

func (r *ComplaintRepository) List(ctx context.Context, f complaintDomain.Filter) (*complaintDomain.Page, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 10
	}

	q := r.db.WithContext(ctx).Model(&complaintDomain.Complaint{})
	if f.Sector != "" {
		q = q.Where("sector = ?", f.Sector)
	}
	if f.AssignedWorkerID != "" {
		q = q.Where("assigned_worker_id = ?", f.AssignedWorkerID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if !f.StartDate.IsZero() && !f.EndDate.IsZero() {
		// End date is inclusive of the whole day.
		end := f.EndDate.Add(24*time.Hour - time.Nanosecond)
		q = q.Where("created_at BETWEEN ? AND ?", f.StartDate, end)
	}
	if f.Search != "" {
		p := "%" + f.Search + "%"
		q = q.Where(
			"human_id LIKE ? OR category LIKE ? OR sector LIKE ? OR location_ref LIKE ? OR description LIKE ?",
			p, p, p, p, p,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []complaintDomain.Complaint
	err := q.Order("created_at DESC, id DESC").
		Limit(f.PageSize).
		Offset((f.Page - 1) * f.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &complaintDomain.Page{
		Items:      items,
		TotalCount: total,
		Page:       f.Page,
		PageSize:   f.PageSize,
	}, nil
}

func (r *ComplaintRepository) CountByStatus(ctx context.Context) (*complaintDomain.StatusCounts, error) {
	type row struct {
		Status complaintDomain.Status
		N      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&complaintDomain.Complaint{}).
		Select("status, count(*) as n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := &complaintDomain.StatusCounts{}
	for _, rw := range rows {
		switch rw.Status {
		case complaintDomain.StatusPending:
			out.Pending = rw.N
		case complaintDomain.StatusInProgress:
			out.InProgress = rw.N
		case complaintDomain.StatusResolved:
			out.Resolved = rw.N
		case complaintDomain.StatusRejected:
			out.Rejected = rw.N
		}
	}
	return out, nil
}
