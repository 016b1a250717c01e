// Package auth carries the per-request identity and the ownership-based
// capability checks applied before any mutation.
package auth

import (
	"github.com/arjun/placementhub/internal/app/models"
)

// Principal is the authenticated caller resolved by the auth middleware.
type Principal struct {
	ID   int64
	Role string
}

// IsAdmin reports whether the principal's role grants admin capability.
func (p *Principal) IsAdmin() bool {
	return models.IsAdminRole(p.Role)
}

// CanMutate reports whether the principal may update or delete a resource
// owned by ownerID. Admins may mutate anything; everyone else only their own.
func (p *Principal) CanMutate(ownerID int64) bool {
	return p.ID == ownerID || p.IsAdmin()
}

// IsOwner reports strict ownership, with no admin override. Some updates are
// owner-only even for admins.
func (p *Principal) IsOwner(ownerID int64) bool {
	return p.ID == ownerID
}
