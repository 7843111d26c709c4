// Package workflow implements the complaint lifecycle engine: submission,
// assignment, resolution, review and reopening, with a closed transition
// table per entity and a single authorization policy in front of every
// operation.
package workflow

import (
	"context"
	"strings"
	"time"

	"facilitydesk/internal/apperr"
	"facilitydesk/internal/domain/complaint"
	"facilitydesk/internal/domain/event"
	"facilitydesk/internal/domain/resolution"
	"facilitydesk/internal/domain/uow"
	"facilitydesk/internal/domain/user"
	"facilitydesk/pkg/id"

	"github.com/google/uuid"
)

type Usecase struct {
	uow        uow.UnitOfWork
	complaints complaint.Repository
	users      user.Repository
	guard      SubmissionGuard
	uploader   Uploader
	publisher  event.Publisher
	// Duplicate-submission freshness window.
	window time.Duration
}

func NewUsecase(
	tx uow.UnitOfWork,
	complaints complaint.Repository,
	users user.Repository,
	guard SubmissionGuard,
	uploader Uploader,
	publisher event.Publisher,
	window time.Duration,
) *Usecase {
	if window <= 0 {
		window = 48 * time.Hour
	}
	return &Usecase{
		uow:        tx,
		complaints: complaints,
		users:      users,
		guard:      guard,
		uploader:   uploader,
		publisher:  publisher,
		window:     window,
	}
}

func (u *Usecase) publish(ctx context.Context, ev event.Event) {
	if u.publisher == nil {
		return
	}
	ev.ID = uuid.NewString()
	u.publisher.Publish(ctx, ev)
}

// Submit creates a complaint on behalf of an anonymous occupant.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*Result, error) {
	if err := Authorize(OpSubmit, nil, ""); err != nil {
		return nil, err
	}
	if !complaint.ValidCategory(in.Category) {
		return nil, apperr.Validationf("unknown category %q", in.Category)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, apperr.Validation("description is required")
	}
	if strings.TrimSpace(in.LocationRef) == "" {
		return nil, apperr.Validation("location is required")
	}
	sector, _ := complaint.SectorFor(in.Category)

	// Serialize check-then-create so two near-simultaneous submissions for
	// the same location/sector cannot both pass the freshness check.
	release, err := u.guard.Acquire(ctx, in.LocationRef, sector)
	if err != nil {
		return nil, err
	}
	defer release()

	now := time.Now().UTC()
	recent, err := u.complaints.CountRecent(ctx, in.LocationRef, sector, now.Add(-u.window))
	if err != nil {
		return nil, err
	}
	if recent > 0 {
		return nil, complaint.ErrDuplicateRecent
	}

	var imageURL string
	if in.Image != nil {
		imageURL, err = u.uploader.Upload(ctx, in.Image.Filename, in.Image.Data)
		if err != nil {
			return nil, apperr.Dependency("image upload failed", err)
		}
	}

	c := &complaint.Complaint{
		ComplaintID:     id.NewID32(),
		HumanID:         id.NewHumanCode(),
		Category:        in.Category,
		Sector:          sector,
		Description:     strings.TrimSpace(in.Description),
		ImageURL:        imageURL,
		LocationRef:     strings.TrimSpace(in.LocationRef),
		Status:          complaint.StatusPending,
		StatusUpdatedAt: now,
		AssignStatus:    complaint.Unassigned,
	}
	if err := u.complaints.Create(ctx, c); err != nil {
		return nil, err
	}

	u.publish(ctx, event.Event{
		Action:      event.ActionNewComplaint,
		ComplaintID: c.ComplaintID,
		Sector:      string(c.Sector),
		ImageURL:    c.ImageURL,
	})
	return &Result{Complaint: c}, nil
}

// Assign puts a technician on a complaint. Re-assignment overwrites the
// previous worker; the operation is valid from any current status.
func (u *Usecase) Assign(ctx context.Context, complaintID, technicianID string, actor *user.User) (*Result, error) {
	var out Result
	err := u.uow.WithinComplaintTx(ctx, complaintID, func(r uow.Repos, c *complaint.Complaint) error {
		if err := Authorize(OpAssign, actor, c.Sector); err != nil {
			return err
		}
		tech, err := r.Users.GetByUserID(ctx, technicianID)
		if err != nil || tech.Role != user.RoleTechnician {
			return user.ErrTechnicianNotFound
		}

		now := time.Now().UTC()
		c.AssignedWorkerID = tech.UserID
		c.AssignStatus = complaint.Assigned
		c.AssignedByID = actor.UserID
		c.AssignedAt = &now
		if c.Status != complaint.StatusInProgress {
			c.Status = complaint.StatusInProgress
			c.StatusUpdatedAt = now
		}
		if err := r.Complaints.Save(ctx, c); err != nil {
			return err
		}
		out.Complaint = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.publish(ctx, event.Event{
		Action:       event.ActionAssignComplaint,
		ComplaintID:  out.Complaint.ComplaintID,
		Sector:       string(out.Complaint.Sector),
		ActorID:      actor.UserID,
		TechnicianID: out.Complaint.AssignedWorkerID,
	})
	return &out, nil
}

// StartWork opens the resolution record for the assigned technician.
func (u *Usecase) StartWork(ctx context.Context, complaintID string, actor *user.User) (*Result, error) {
	var out Result
	err := u.uow.WithinComplaintTx(ctx, complaintID, func(r uow.Repos, c *complaint.Complaint) error {
		if err := Authorize(OpStartWork, actor, c.Sector); err != nil {
			return err
		}
		if c.AssignStatus != complaint.Assigned || c.AssignedWorkerID != actor.UserID {
			return apperr.Forbidden("complaint is not assigned to this technician")
		}
		if c.ResolutionID != "" {
			res, err := r.Resolutions.GetActiveByComplaintID(ctx, c.ComplaintID)
			if err != nil {
				return err
			}
			if !res.Status.Terminal() {
				return resolution.ErrAlreadyOpen
			}
			// A decided record is continued through resubmission or reopen,
			// never replaced by a fresh one.
			return apperr.Conflict("complaint already went through review; resubmit or reopen instead")
		}

		now := time.Now().UTC()
		res := &resolution.Resolution{
			ResolutionID: id.NewID32(),
			ComplaintID:  c.ComplaintID,
			Status:       resolution.StatusInProgress,
			ResolvedByID: actor.UserID,
		}
		if err := r.Resolutions.Create(ctx, res); err != nil {
			return err
		}
		c.ResolutionID = res.ResolutionID
		if c.Status != complaint.StatusInProgress {
			c.Status = complaint.StatusInProgress
			c.StatusUpdatedAt = now
		}
		if err := r.Complaints.Save(ctx, c); err != nil {
			return err
		}
		out.Complaint, out.Resolution = c, res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitResolution moves the active resolution to under_review. It also
// covers resubmission after a rejection, flipping the complaint back to
// In Progress.
func (u *Usecase) SubmitResolution(ctx context.Context, in SubmitResolutionInput, actor *user.User) (*Result, error) {
	if strings.TrimSpace(in.Note) == "" {
		return nil, apperr.Validation("resolution note is required")
	}

	// Upload before the transaction; a dependency failure aborts the whole
	// operation with no state change.
	var attachmentURL string
	if in.Attachment != nil {
		url, err := u.uploader.Upload(ctx, in.Attachment.Filename, in.Attachment.Data)
		if err != nil {
			return nil, apperr.Dependency("attachment upload failed", err)
		}
		attachmentURL = url
	}

	var out Result
	var assignerID string
	err := u.uow.WithinComplaintTx(ctx, in.ComplaintID, func(r uow.Repos, c *complaint.Complaint) error {
		if err := Authorize(OpSubmitResolution, actor, c.Sector); err != nil {
			return err
		}
		if c.AssignStatus != complaint.Assigned || c.AssignedWorkerID != actor.UserID {
			return apperr.Forbidden("complaint is not assigned to this technician")
		}
		if c.ResolutionID == "" {
			return resolution.ErrNotFound
		}
		res, err := r.Resolutions.GetActiveByComplaintID(ctx, c.ComplaintID)
		if err != nil {
			return err
		}
		switch res.Status {
		case resolution.StatusInProgress, resolution.StatusUnderReview, resolution.StatusRejected:
		default:
			return resolution.ErrInvalidTransition
		}

		now := time.Now().UTC()
		res.Status = resolution.StatusUnderReview
		res.ResolutionNote = strings.TrimSpace(in.Note)
		res.ResolutionSubmittedAt = &now
		if attachmentURL != "" {
			res.AttachmentURL = attachmentURL
		}
		// Resubmission discards the previous decision.
		res.ApprovedByID = ""
		res.RejectedByID = ""
		if err := r.Resolutions.Save(ctx, res); err != nil {
			return err
		}

		if c.Status != complaint.StatusInProgress {
			if !complaint.CanTransition(c.Status, complaint.StatusInProgress) {
				return complaint.ErrInvalidTransition
			}
			c.Status = complaint.StatusInProgress
			c.StatusUpdatedAt = now
			if err := r.Complaints.Save(ctx, c); err != nil {
				return err
			}
		}
		out.Complaint, out.Resolution = c, res
		assignerID = c.AssignedByID
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.publish(ctx, event.Event{
		Action:       event.ActionReviewResolution,
		ComplaintID:  out.Complaint.ComplaintID,
		Sector:       string(out.Complaint.Sector),
		ActorID:      actor.UserID,
		TechnicianID: actor.UserID,
		AssignerID:   assignerID,
	})
	return &out, nil
}

// Approve accepts an under_review resolution and closes the complaint.
func (u *Usecase) Approve(ctx context.Context, resolutionID string, actor *user.User) (*Result, error) {
	return u.decide(ctx, resolutionID, actor, OpApprove, "")
}

// Reject declines an under_review resolution; the technician may resubmit.
func (u *Usecase) Reject(ctx context.Context, resolutionID, rejectedNote string, actor *user.User) (*Result, error) {
	if strings.TrimSpace(rejectedNote) == "" {
		return nil, apperr.Validation("rejected note is required")
	}
	return u.decide(ctx, resolutionID, actor, OpReject, strings.TrimSpace(rejectedNote))
}

func (u *Usecase) decide(ctx context.Context, resolutionID string, actor *user.User, op Operation, rejectedNote string) (*Result, error) {
	// Role gate before touching state: a technician is rejected here no
	// matter what the resolution looks like.
	if err := Authorize(op, actor, ""); err != nil {
		return nil, err
	}

	// Locate the owning complaint, then redo all reads under its row lock.
	cid, err := u.resolutionComplaintID(ctx, resolutionID)
	if err != nil {
		return nil, err
	}

	var out Result
	err = u.uow.WithinComplaintTx(ctx, cid, func(r uow.Repos, c *complaint.Complaint) error {
		if err := Authorize(op, actor, c.Sector); err != nil {
			return err
		}
		res, err := r.Resolutions.GetByResolutionID(ctx, resolutionID)
		if err != nil {
			return err
		}
		if res.ResolutionID != c.ResolutionID {
			return apperr.Conflict("resolution has been superseded")
		}
		if res.Status != resolution.StatusUnderReview {
			return resolution.ErrInvalidTransition
		}

		now := time.Now().UTC()
		var target complaint.Status
		if op == OpApprove {
			res.Status = resolution.StatusApproved
			res.ApprovedByID = actor.UserID
			res.RejectedByID = ""
			target = complaint.StatusResolved
		} else {
			res.Status = resolution.StatusRejected
			res.RejectedByID = actor.UserID
			res.RejectedNote = rejectedNote
			res.ApprovedByID = ""
			target = complaint.StatusRejected
		}
		if err := r.Resolutions.Save(ctx, res); err != nil {
			return err
		}

		if !complaint.CanTransition(c.Status, target) {
			return complaint.ErrInvalidTransition
		}
		c.Status = target
		c.StatusUpdatedAt = now
		if err := r.Complaints.Save(ctx, c); err != nil {
			return err
		}
		out.Complaint, out.Resolution = c, res
		return nil
	})
	if err != nil {
		return nil, err
	}

	action := event.ActionResolutionApproved
	if op == OpReject {
		action = event.ActionResolutionRejected
	}
	u.publish(ctx, event.Event{
		Action:       action,
		ComplaintID:  out.Complaint.ComplaintID,
		Sector:       string(out.Complaint.Sector),
		ActorID:      actor.UserID,
		TechnicianID: out.Resolution.ResolvedByID,
		AssignerID:   out.Complaint.AssignedByID,
	})
	return &out, nil
}

// Reopen restarts the review cycle on a decided complaint.
func (u *Usecase) Reopen(ctx context.Context, complaintID string, actor *user.User) (*Result, error) {
	if err := Authorize(OpReopen, actor, ""); err != nil {
		return nil, err
	}

	var out Result
	err := u.uow.WithinComplaintTx(ctx, complaintID, func(r uow.Repos, c *complaint.Complaint) error {
		if err := Authorize(OpReopen, actor, c.Sector); err != nil {
			return err
		}
		if c.ResolutionID == "" {
			return resolution.ErrNotFound
		}
		res, err := r.Resolutions.GetActiveByComplaintID(ctx, c.ComplaintID)
		if err != nil {
			return err
		}
		switch res.Status {
		case resolution.StatusApproved, resolution.StatusRejected, resolution.StatusUnderReview:
		default:
			return resolution.ErrInvalidTransition
		}

		now := time.Now().UTC()
		// Reset the decision; notes and attachments stay for history.
		res.Status = resolution.StatusUnderReview
		res.ApprovedByID = ""
		res.RejectedByID = ""
		if err := r.Resolutions.Save(ctx, res); err != nil {
			return err
		}

		if c.Status != complaint.StatusInProgress {
			if !complaint.CanTransition(c.Status, complaint.StatusInProgress) {
				return complaint.ErrInvalidTransition
			}
			c.Status = complaint.StatusInProgress
			c.StatusUpdatedAt = now
			if err := r.Complaints.Save(ctx, c); err != nil {
				return err
			}
		}
		out.Complaint, out.Resolution = c, res
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.publish(ctx, event.Event{
		Action:       event.ActionReopenComplaint,
		ComplaintID:  out.Complaint.ComplaintID,
		Sector:       string(out.Complaint.Sector),
		ActorID:      actor.UserID,
		TechnicianID: out.Complaint.AssignedWorkerID,
		AssignerID:   out.Complaint.AssignedByID,
	})
	return &out, nil
}

func (u *Usecase) resolutionComplaintID(ctx context.Context, resolutionID string) (string, error) {
	var complaintID string
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		res, err := r.Resolutions.GetByResolutionID(ctx, resolutionID)
		if err != nil {
			return err
		}
		complaintID = res.ComplaintID
		return nil
	})
	return complaintID, err
}
