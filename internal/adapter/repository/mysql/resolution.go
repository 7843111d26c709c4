package mysql

import (
	"context"
	"errors"

	resolutionDomain "facilitydesk/internal/domain/resolution"

	"gorm.io/gorm"
)

type ResolutionRepository struct{ db *gorm.DB }

func NewResolutionRepository(db *gorm.DB) *ResolutionRepository {
	return &ResolutionRepository{db: db}
}

func (r *ResolutionRepository) Create(ctx context.Context, res *resolutionDomain.Resolution) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *ResolutionRepository) Save(ctx context.Context, res *resolutionDomain.Resolution) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *ResolutionRepository) GetByResolutionID(ctx context.Context, resolutionID string) (*resolutionDomain.Resolution, error) {
	var out resolutionDomain.Resolution
	res := r.db.WithContext(ctx).Where("resolution_id = ?", resolutionID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, resolutionDomain.ErrNotFound
	}
	return &out, res.Error
}

// GetActiveByComplaintID resolves through complaints.resolution_id so a
// superseded record is never picked up by accident.
func (r *ResolutionRepository) GetActiveByComplaintID(ctx context.Context, complaintID string) (*resolutionDomain.Resolution, error) {
	var out resolutionDomain.Resolution
	res := r.db.WithContext(ctx).
		Where("resolution_id = (SELECT resolution_id FROM complaints WHERE complaint_id = ? AND deleted_at IS NULL)", complaintID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, resolutionDomain.ErrNotFound
	}
	return &out, res.Error
}
