// Package notify consumes workflow events and fans them out to push
// recipients. Delivery is strictly best-effort: failures are logged and
// never reach the transition that emitted the event.
package notify

import (
	"context"
	"sync"
	"time"

	"facilitydesk/internal/domain/event"
	"facilitydesk/internal/domain/user"

	"github.com/rs/zerolog"
)

const dispatchTimeout = 10 * time.Second

// Sender is the push transport. Implementations deliver one payload to one
// device token.
type Sender interface {
	Send(ctx context.Context, token string, p event.Payload) error
}

type Dispatcher struct {
	users  user.Repository
	sender Sender
	log    zerolog.Logger

	wg sync.WaitGroup
}

func NewDispatcher(users user.Repository, sender Sender, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{users: users, sender: sender, log: log}
}

// Publish hands the event to a background goroutine and returns immediately.
func (d *Dispatcher) Publish(_ context.Context, ev event.Event) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		d.dispatch(ctx, ev)
	}()
}

// Wait blocks until in-flight dispatches finish. Used on shutdown and in tests.
func (d *Dispatcher) Wait() { d.wg.Wait() }

func (d *Dispatcher) dispatch(ctx context.Context, ev event.Event) {
	tokens, err := d.recipients(ctx, ev)
	if err != nil {
		d.log.Error().Err(err).Str("event_id", ev.ID).Str("action", string(ev.Action)).Str("complaint_id", ev.ComplaintID).
			Msg("notification recipient lookup failed")
		return
	}
	if len(tokens) == 0 {
		d.log.Debug().Str("event_id", ev.ID).Str("action", string(ev.Action)).Str("complaint_id", ev.ComplaintID).
			Msg("no notification recipients")
		return
	}

	p := payloadFor(ev)
	for _, tok := range tokens {
		if err := d.sender.Send(ctx, tok, p); err != nil {
			d.log.Error().Err(err).Str("event_id", ev.ID).Str("action", string(ev.Action)).Str("complaint_id", ev.ComplaintID).
				Msg("notification send failed")
		}
	}
}

// recipients resolves device tokens per action. The actor never gets a copy
// of their own transition.
func (d *Dispatcher) recipients(ctx context.Context, ev event.Event) ([]string, error) {
	var tokens []string
	add := func(us ...user.User) {
		for _, u := range us {
			if u.PushToken == "" || u.UserID == ev.ActorID {
				continue
			}
			tokens = append(tokens, u.PushToken)
		}
	}
	addByID := func(userID string) error {
		if userID == "" || userID == ev.ActorID {
			return nil
		}
		u, err := d.users.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		add(*u)
		return nil
	}

	switch ev.Action {
	case event.ActionNewComplaint:
		admins, err := d.users.ListActiveByRole(ctx, user.RoleSectorAdmin, ev.Sector)
		if err != nil {
			return nil, err
		}
		add(admins...)
		if len(tokens) == 0 {
			// No reachable sectoradmin: escalate to the superadmins.
			supers, err := d.users.ListActiveByRole(ctx, user.RoleSuperAdmin, "")
			if err != nil {
				return nil, err
			}
			add(supers...)
		}
	case event.ActionAssignComplaint:
		if err := addByID(ev.TechnicianID); err != nil {
			return nil, err
		}
	case event.ActionReviewResolution:
		if err := addByID(ev.AssignerID); err != nil {
			return nil, err
		}
	case event.ActionResolutionApproved:
		if err := addByID(ev.TechnicianID); err != nil {
			return nil, err
		}
		// Superadmins get an audit copy of every approval.
		supers, err := d.users.ListActiveByRole(ctx, user.RoleSuperAdmin, "")
		if err != nil {
			return nil, err
		}
		add(supers...)
	case event.ActionResolutionRejected:
		if err := addByID(ev.TechnicianID); err != nil {
			return nil, err
		}
	case event.ActionReopenComplaint:
		if err := addByID(ev.TechnicianID); err != nil {
			return nil, err
		}
		if ev.AssignerID != ev.TechnicianID {
			if err := addByID(ev.AssignerID); err != nil {
				return nil, err
			}
		}
	}
	return tokens, nil
}

func payloadFor(ev event.Event) event.Payload {
	p := event.Payload{
		ComplaintID: ev.ComplaintID,
		Action:      ev.Action,
		ImageURL:    ev.ImageURL,
	}
	switch ev.Action {
	case event.ActionNewComplaint:
		p.Title = "New Complaint"
		p.Message = "A new complaint has been registered in your sector. Please review and take action."
	case event.ActionAssignComplaint:
		p.Title = "New Complaint Assigned"
		p.Message = "You have been assigned a new complaint. Please review the details, address the issue, and submit your resolution promptly."
	case event.ActionReviewResolution:
		p.Title = "Resolution Submitted for Review"
		p.Message = "A technician has submitted a resolution for a complaint. Please review and approve or reject the resolution."
	case event.ActionResolutionApproved:
		p.Title = "Resolution Approved"
		p.Message = "Your submitted resolution for the complaint has been approved."
	case event.ActionResolutionRejected:
		p.Title = "Resolution Rejected"
		p.Message = "Your resolution for the complaint has been rejected. Please review the feedback and submit an updated resolution."
	case event.ActionReopenComplaint:
		p.Title = "Complaint Reopened"
		p.Message = "A previously resolved complaint has been reopened and requires further action."
	}
	return p
}
