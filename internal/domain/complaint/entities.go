package complaint

import (
	"time"

	"facilitydesk/internal/apperr"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
	StatusRejected   Status = "Rejected"
)

type AssignStatus string

const (
	Unassigned AssignStatus = "unassigned"
	Assigned   AssignStatus = "assigned"
)

// Sector is the pool that owns a complaint: it decides which sectoradmins
// get notified and which technicians may be assigned.
type Sector string

const (
	SectorMaintenance     Sector = "Maintenance"
	SectorIT              Sector = "IT"
	SectorHousekeeping    Sector = "Housekeeping"
	SectorSecurity        Sector = "Security"
	SectorGeneralServices Sector = "General Services"
)

// Category is what the submitter picks on the form; the owning sector is
// derived from it, never submitted directly.
type Category string

const (
	CategoryAirConditioning Category = "Air Conditioning"
	CategoryElectrical      Category = "Electrical"
	CategoryTelephone       Category = "Telephone"
	CategoryITSupport       Category = "IT Support"
	CategoryHousekeeping    Category = "Housekeeping"
	CategoryCarpentry       Category = "Carpentry"
	CategoryUnsafeCondition Category = "Unsafe Condition"
	CategoryOthers          Category = "Others"
)

var categorySector = map[Category]Sector{
	CategoryAirConditioning: SectorMaintenance,
	CategoryElectrical:      SectorMaintenance,
	CategoryTelephone:       SectorIT,
	CategoryITSupport:       SectorIT,
	CategoryHousekeeping:    SectorHousekeeping,
	CategoryCarpentry:       SectorMaintenance,
	CategoryUnsafeCondition: SectorSecurity,
	CategoryOthers:          SectorGeneralServices,
}

// SectorFor maps a submitted category to its handling sector.
func SectorFor(c Category) (Sector, bool) {
	s, ok := categorySector[c]
	return s, ok
}

func ValidCategory(c Category) bool {
	_, ok := categorySector[c]
	return ok
}

// statusTransitions is the authoritative table. Anything absent is rejected;
// caller-supplied status strings are never trusted.
var statusTransitions = map[Status][]Status{
	StatusPending:    {StatusInProgress},
	StatusInProgress: {StatusInProgress, StatusResolved, StatusRejected},
	StatusResolved:   {StatusInProgress},
	StatusRejected:   {StatusInProgress},
}

func CanTransition(from, to Status) bool {
	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

var (
	ErrNotFound          = apperr.NotFound("complaint not found")
	ErrInvalidTransition = apperr.Conflict("complaint status transition not allowed")
	// Message stays duration-free; the freshness window is configuration.
	ErrDuplicateRecent = apperr.RateLimited("a complaint for this location and sector was already submitted recently")
)

type Complaint struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	ComplaintID string `gorm:"column:complaint_id;type:char(32);not null;uniqueIndex:ux_complaints_complaint_id" json:"complaint_id"`
	// Short display code shown to occupants
	HumanID     string   `gorm:"column:human_id;size:24;not null;uniqueIndex:ux_complaints_human_id" json:"human_id"`
	Category    Category `gorm:"column:category;size:32;not null" json:"category"`
	Sector      Sector   `gorm:"column:sector;size:32;not null;index:idx_complaints_sector" json:"sector"`
	Description string   `gorm:"column:description;type:text" json:"description"`
	ImageURL    string   `gorm:"column:image_url;type:text" json:"image_url,omitempty"`
	LocationRef string   `gorm:"column:location_ref;size:64;not null;index:idx_complaints_location" json:"location_ref"`

	Status          Status    `gorm:"column:status;size:16;default:'Pending';index:idx_complaints_status" json:"status"`
	StatusUpdatedAt time.Time `gorm:"column:status_updated_at" json:"status_updated_at"`

	AssignStatus     AssignStatus `gorm:"column:assign_status;size:16;default:'unassigned'" json:"assign_status"`
	AssignedWorkerID string       `gorm:"column:assigned_worker_id;type:char(32);index:idx_complaints_worker" json:"assigned_worker_id,omitempty"`
	AssignedByID     string       `gorm:"column:assigned_by_id;type:char(32)" json:"assigned_by_id,omitempty"`
	AssignedAt       *time.Time   `gorm:"column:assigned_at" json:"assigned_at,omitempty"`

	// Active resolution; superseded ones keep their rows but lose this link.
	ResolutionID string `gorm:"column:resolution_id;type:char(32)" json:"resolution_id,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime;index:idx_complaints_created" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Complaint) TableName() string { return "complaints" }
