package user

import (
	"time"

	"facilitydesk/internal/apperr"

	"gorm.io/gorm"
)

type Role string

const (
	RoleTechnician  Role = "technician"
	RoleSectorAdmin Role = "sectoradmin"
	RoleSuperAdmin  Role = "superadmin"
)

var (
	ErrNotFound           = apperr.NotFound("user not found")
	ErrTechnicianNotFound = apperr.NotFound("technician not found")
)

// User is the acting principal. This service only reads it: authentication
// and account lifecycle live in the identity service.
type User struct {
	ID       uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserID   string `gorm:"column:user_id;type:char(32);not null;uniqueIndex:ux_users_user_id" json:"user_id"`
	UserName string `gorm:"column:user_name;size:64;not null" json:"user_name"`
	Email    string `gorm:"column:email;size:128;not null;uniqueIndex:ux_users_email" json:"email"`
	Role     Role   `gorm:"column:role;size:16;not null" json:"role"`
	// Sector affiliation; set for sectoradmins and technicians.
	Sector    string         `gorm:"column:sector;size:32;index:idx_users_sector" json:"sector,omitempty"`
	PushToken string         `gorm:"column:push_token;type:text" json:"-"`
	IsActive  bool           `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (User) TableName() string { return "users" }
