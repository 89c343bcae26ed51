package services

import (
	"context"
	"errors"

	"github.com/localnerve/notary-records/internal/models"
	"github.com/localnerve/notary-records/internal/repository"
)

// Role is the closed set of caller kinds
type Role int

const (
	RoleNotary Role = iota + 1
	RoleEmployee
	RoleSuper
)

func (r Role) String() string {
	switch r {
	case RoleNotary:
		return "notary"
	case RoleEmployee:
		return "employee"
	case RoleSuper:
		return "super"
	}
	return "unknown"
}

var (
	// ErrRevokedEmployee is returned for an employee whose access was withdrawn
	ErrRevokedEmployee = errors.New("employee access revoked")
	// ErrRoleInvariant is returned when stored flags mix the notary and employee tracks
	ErrRoleInvariant = errors.New("inconsistent role flags")
)

// Principal is the resolved identity of an authenticated caller. It is
// derived once per request and never mutated.
type Principal struct {
	ID           uint64
	Role         Role
	ActiveNotary bool
}

// IsNotary reports whether the caller is on the notary track
func (p Principal) IsNotary() bool { return p.Role == RoleNotary }

// IsActiveNotary reports whether the caller may act as a notary
func (p Principal) IsActiveNotary() bool { return p.Role == RoleNotary && p.ActiveNotary }

// IsEmployee reports whether the caller is an (active) employee, super included
func (p Principal) IsEmployee() bool { return p.Role == RoleEmployee || p.Role == RoleSuper }

// IsSuper reports whether the caller is a super employee
func (p Principal) IsSuper() bool { return p.Role == RoleSuper }

// Flags exposes the principal as the stored flag shape
func (p Principal) Flags() models.RoleFlags {
	return models.RoleFlags{
		IsNotary:         p.IsNotary(),
		IsActiveNotary:   p.IsActiveNotary(),
		IsEmployee:       p.IsEmployee(),
		IsActiveEmployee: p.IsEmployee(),
		IsSuper:          p.IsSuper(),
	}
}

// DerivePrincipal maps stored role flags onto a Principal. Revoked employees
// and mixed-track flag sets are rejected.
func DerivePrincipal(u *models.User) (Principal, error) {
	if u.IsEmployee && !u.IsActiveEmployee {
		return Principal{}, ErrRevokedEmployee
	}
	if len(u.Flags().Violations()) > 0 {
		return Principal{}, ErrRoleInvariant
	}

	p := Principal{ID: u.ID}
	switch {
	case u.IsEmployee && u.IsSuper:
		p.Role = RoleSuper
	case u.IsEmployee:
		p.Role = RoleEmployee
	default:
		p.Role = RoleNotary
		p.ActiveNotary = u.IsActiveNotary
	}
	return p, nil
}

// PrincipalResolver turns a token subject into a Principal
type PrincipalResolver interface {
	Resolve(ctx context.Context, userID uint64) (Principal, error)
}

// StorePrincipals re-reads the user row on every call so revocation takes
// effect on the next request.
type StorePrincipals struct {
	Users *repository.Repository[models.User]
}

// NewStorePrincipals returns a resolver over users
func NewStorePrincipals(users *repository.Repository[models.User]) *StorePrincipals {
	return &StorePrincipals{Users: users}
}

// Resolve looks up userID and derives its Principal. A missing user fails
// with repository.ErrNotFound.
func (s *StorePrincipals) Resolve(ctx context.Context, userID uint64) (Principal, error) {
	user, err := s.Users.FindOne(ctx, repository.Predicate{"id": userID})
	if err != nil {
		return Principal{}, err
	}
	return DerivePrincipal(user)
}
