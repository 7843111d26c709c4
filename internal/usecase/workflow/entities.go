package workflow

import (
	"context"

	"facilitydesk/internal/domain/complaint"
	"facilitydesk/internal/domain/resolution"
)

// ImageUpload is a file handed to the external upload collaborator.
type ImageUpload struct {
	Filename string
	Data     []byte
}

type SubmitInput struct {
	Category    complaint.Category
	Description string
	LocationRef string
	Image       *ImageUpload
}

type SubmitResolutionInput struct {
	ComplaintID string
	Note        string
	Attachment  *ImageUpload
}

// Result is the success envelope of every mutating operation.
type Result struct {
	Complaint  *complaint.Complaint   `json:"complaint"`
	Resolution *resolution.Resolution `json:"resolution,omitempty"`
}

// SubmissionGuard serializes the duplicate-submission check-then-create.
// Acquire fails with a rate-limited error when another submission for the
// same (locationRef, sector) holds the lock.
type SubmissionGuard interface {
	Acquire(ctx context.Context, locationRef string, sector complaint.Sector) (release func(), err error)
}

// Uploader is the external binary-storage collaborator. A failure here
// aborts the operation that needed the file.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}
