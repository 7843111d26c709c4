package workflow

import (
	"facilitydesk/internal/apperr"
	"facilitydesk/internal/domain/complaint"
	"facilitydesk/internal/domain/user"
)

type Operation string

const (
	OpSubmit           Operation = "submit"
	OpAssign           Operation = "assign"
	OpStartWork        Operation = "start_work"
	OpSubmitResolution Operation = "submit_resolution"
	OpApprove          Operation = "approve"
	OpReject           Operation = "reject"
	OpReopen           Operation = "reopen"
)

var (
	errNotAuthenticated = apperr.Unauthorized("authentication required")
	errRoleForbidden    = apperr.Forbidden("role is not allowed to perform this operation")
	errSectorForbidden  = apperr.Forbidden("complaint belongs to a different sector")
)

// Authorize is the single policy consulted by every transition. Ownership
// checks for technicians (is this MY complaint) stay with the caller; this
// function gates role and sector only.
func Authorize(op Operation, actor *user.User, sector complaint.Sector) error {
	if op == OpSubmit {
		// Anonymous occupants submit complaints.
		return nil
	}
	if actor == nil {
		return errNotAuthenticated
	}

	switch actor.Role {
	case user.RoleSuperAdmin:
		return nil
	case user.RoleSectorAdmin:
		switch op {
		case OpAssign, OpApprove, OpReject, OpReopen:
			if sector != "" && actor.Sector != string(sector) {
				return errSectorForbidden
			}
			return nil
		}
		return errRoleForbidden
	case user.RoleTechnician:
		switch op {
		case OpStartWork, OpSubmitResolution:
			return nil
		}
		return errRoleForbidden
	}
	return errRoleForbidden
}
