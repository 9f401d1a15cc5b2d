package service

import (
	"github.com/dtroode/paperdesk/internal/apierrors"
	"github.com/dtroode/paperdesk/internal/model"
)

// Policy decides roles and resource access. The administrator is the single
// account whose email equals the configured admin email.
type Policy struct {
	adminEmail        string
	openAuthorListing bool
}

// NewPolicy creates a policy for the given administrator email. When
// openAuthorListing is set, any authenticated caller may list any author's papers.
func NewPolicy(adminEmail string, openAuthorListing bool) *Policy {
	return &Policy{
		adminEmail:        model.NormalizeEmail(adminEmail),
		openAuthorListing: openAuthorListing,
	}
}

// AdminEmail returns the configured administrator email.
func (p *Policy) AdminEmail() string {
	return p.adminEmail
}

// RoleFor computes the role of an email. It is never taken from client input.
func (p *Policy) RoleFor(email string) model.Role {
	if model.NormalizeEmail(email) == p.adminEmail {
		return model.RoleAdmin
	}
	return model.RoleAuthor
}

// CheckRegistrationRole returns the computed role for email, or Forbidden
// when the client asked for a different one.
func (p *Policy) CheckRegistrationRole(email string, requested model.Role) (model.Role, error) {
	role := p.RoleFor(email)
	if role == requested {
		return role, nil
	}
	if requested == model.RoleAdmin {
		return "", apierrors.NewForbidden("Only official admin can register. Please register as an author.")
	}
	return "", apierrors.NewForbidden("This email is reserved for the admin. Please register as admin.")
}

// CheckLoginRole fails with Forbidden when the requested role differs from
// the stored role of the account.
func (p *Policy) CheckLoginRole(account model.Account, requested model.Role) error {
	if account.Role == requested {
		return nil
	}
	if requested == model.RoleAdmin {
		return apierrors.NewForbidden("Only official admin can login. Please login as an author.")
	}
	return apierrors.NewForbidden("This email is registered as admin. Please login as admin.")
}

// CanMutate reports whether actor may edit or delete paper.
func (p *Policy) CanMutate(actor model.Identity, paper model.Paper) bool {
	return actor.IsAdmin() || model.NormalizeEmail(actor.Email) == model.NormalizeEmail(paper.Email)
}

// CanTransitionStatus reports whether actor may set a paper status.
func (p *Policy) CanTransitionStatus(actor model.Identity) bool {
	return actor.IsAdmin()
}

// CanListAuthor reports whether actor may list the papers of email.
func (p *Policy) CanListAuthor(actor model.Identity, email string) bool {
	if p.openAuthorListing || actor.IsAdmin() {
		return true
	}
	return model.NormalizeEmail(actor.Email) == model.NormalizeEmail(email)
}
