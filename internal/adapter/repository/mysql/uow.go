package mysql

import (
	"context"

	"facilitydesk/internal/domain/complaint"
	"facilitydesk/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Complaints:  &ComplaintRepository{db: tx},
		Resolutions: &ResolutionRepository{db: tx},
		Users:       &UserRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinComplaintTx(ctx context.Context, complaintID string, fn func(r uow.Repos, c *complaint.Complaint) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the complaint row up-front so concurrent transitions serialize
		c, err := r.Complaints.(*ComplaintRepository).GetByComplaintIDForUpdate(ctx, complaintID)
		if err != nil {
			return err
		}
		return fn(r, c)
	})
}
