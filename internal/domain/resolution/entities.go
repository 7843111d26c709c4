package resolution

import (
	"time"

	"facilitydesk/internal/apperr"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusInProgress  Status = "in_progress"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
)

// statusTransitions is the closed table for the review cycle. Resubmission
// after rejection and reopening after a decision both move the same record
// back to under_review; a complaint never grows a second active resolution.
var statusTransitions = map[Status][]Status{
	StatusPending:     {StatusInProgress},
	StatusInProgress:  {StatusUnderReview},
	StatusUnderReview: {StatusUnderReview, StatusApproved, StatusRejected},
	StatusApproved:    {StatusUnderReview},
	StatusRejected:    {StatusUnderReview},
}

func CanTransition(from, to Status) bool {
	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether a decision has been made on the record.
func (s Status) Terminal() bool { return s == StatusApproved || s == StatusRejected }

var (
	ErrNotFound          = apperr.NotFound("resolution not found")
	ErrInvalidTransition = apperr.Conflict("resolution status transition not allowed")
	ErrAlreadyOpen       = apperr.Conflict("complaint already has an open resolution")
)

type Resolution struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	ResolutionID string `gorm:"column:resolution_id;type:char(32);not null;uniqueIndex:ux_resolutions_resolution_id" json:"resolution_id"`
	// Public id of the owning complaint
	ComplaintID string `gorm:"column:complaint_id;type:char(32);not null;index:idx_resolutions_complaint" json:"complaint_id"`

	Status         Status `gorm:"column:status;size:16;default:'pending'" json:"status"`
	ResolutionNote string `gorm:"column:resolution_note;type:text" json:"resolution_note,omitempty"`
	AttachmentURL  string `gorm:"column:attachment_url;type:text" json:"attachment_url,omitempty"`

	ResolvedByID          string     `gorm:"column:resolved_by_id;type:char(32);not null" json:"resolved_by_id"`
	ResolutionSubmittedAt *time.Time `gorm:"column:resolution_submitted_at" json:"resolution_submitted_at,omitempty"`

	ApprovedByID string `gorm:"column:approved_by_id;type:char(32)" json:"approved_by_id,omitempty"`
	RejectedByID string `gorm:"column:rejected_by_id;type:char(32)" json:"rejected_by_id,omitempty"`
	RejectedNote string `gorm:"column:rejected_note;type:text" json:"rejected_note,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Resolution) TableName() string { return "resolutions" }
