package service

import (
	"fmt"
	"net/url"

	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
)

// View identifies one of the three pages served by the gateway.
type View int

const (
	ViewLogin View = iota
	ViewUsers
	ViewCertificates
)

const (
	PathLogin        = "/login"
	PathUsers        = "/users"
	PathCertificates = "/certificates"
)

// Decision is the outcome of a navigation check: either stay on the
// requested view or redirect to Target.
type Decision struct {
	Redirect bool
	Target   string
}

func stay() Decision              { return Decision{} }
func redirect(to string) Decision { return Decision{Redirect: true, Target: to} }

// Landing is the role-appropriate landing view after authentication: the
// directory for managers, the user's own certificates otherwise.
func Landing(id domain.Identity) string {
	if id.Role == domain.RoleManager {
		return PathUsers
	}
	return CertificatesURL(domain.Subject{ID: id.ID, Username: id.Username})
}

// CertificatesURL builds the certificate view URL carrying the subject
// selection, mirroring the links the directory view emits.
func CertificatesURL(subject domain.Subject) string {
	return fmt.Sprintf("%s?user_id=%d&username=%s",
		PathCertificates, subject.ID, url.QueryEscape(subject.Username))
}

// Bootstrap is the pure page-load gating decision. An absent session may only
// see the login view; an authenticated one is sent from the login view to its
// landing page. It performs no I/O.
func Bootstrap(view View, session domain.Session, present bool) Decision {
	if !present {
		if view == ViewLogin {
			return stay()
		}
		return redirect(PathLogin)
	}
	if view == ViewLogin {
		return redirect(Landing(session.Identity))
	}
	return stay()
}

// GateRole restricts a view to the given role. Denied sessions are sent back
// to the login view rather than shown an inline error.
func GateRole(session domain.Session, role string) Decision {
	if session.Identity.Role != role {
		return redirect(PathLogin)
	}
	return stay()
}
