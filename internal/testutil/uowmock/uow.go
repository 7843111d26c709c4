package uowmock

import (
	"context"
	"errors"

	"facilitydesk/internal/domain/complaint"
	"facilitydesk/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return
// errUnimplemented.
type UoW struct {
	WithinTxFn          func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinComplaintTxFn func(ctx context.Context, complaintID string, fn func(r uow.Repos, c *complaint.Complaint) error) error
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinComplaintTx(ctx context.Context, complaintID string, fn func(r uow.Repos, c *complaint.Complaint) error) error {
	if m.WithinComplaintTxFn != nil {
		return m.WithinComplaintTxFn(ctx, complaintID, fn)
	}
	return errUnimplemented
}
