package mysql

import (
	"context"
	"errors"

	userDomain "facilitydesk/internal/domain/user"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, userDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *UserRepository) ListActiveByRole(ctx context.Context, role userDomain.Role, sector string) ([]userDomain.User, error) {
	q := r.db.WithContext(ctx).Where("role = ? AND is_active = ?", role, true)
	if sector != "" {
		q = q.Where("sector = ?", sector)
	}
	var out []userDomain.User
	err := q.Order("user_name ASC").Find(&out).Error
	return out, err
}
