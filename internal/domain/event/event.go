// Package event models the domain events emitted by workflow transitions.
// The notification dispatcher consumes them; the core never talks to a push
// backend directly.
package event

import "context"

type Action string

const (
	ActionNewComplaint       Action = "NEW_COMPLAINT"
	ActionAssignComplaint    Action = "ASSIGN_COMPLAINT"
	ActionReviewResolution   Action = "REVIEW_RESOLUTION"
	ActionResolutionApproved Action = "RESOLUTION_APPROVED"
	ActionResolutionRejected Action = "RESOLUTION_REJECTED"
	ActionReopenComplaint    Action = "REOPEN_COMPLAINT"
)

// Event carries everything the dispatcher needs to pick recipients and build
// a payload without re-reading workflow state.
type Event struct {
	ID          string
	Action      Action
	ComplaintID string
	Sector      string
	// Actor who caused the transition; skipped as a recipient.
	ActorID string
	// Assigned technician, when one exists.
	TechnicianID string
	// Principal who performed the assignment.
	AssignerID string
	ImageURL   string
}

// Payload is the wire shape handed to the push transport.
type Payload struct {
	Title       string `json:"title"`
	Message     string `json:"message"`
	ComplaintID string `json:"complaintId"`
	Action      Action `json:"action"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Publisher accepts an event after a transition commits. Implementations are
// fire-and-forget: Publish must never block the caller on delivery and never
// returns delivery errors.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}
