package user

import "context"

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*User, error)
	// ListActiveByRole returns active users with the given role; sector
	// narrows the result when non-empty.
	ListActiveByRole(ctx context.Context, role Role, sector string) ([]User, error)
}
