package ports

import (
	"context"
	"io"

	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
)

// AuthService drives the login and registration workflows.
type AuthService interface {
	// Login authenticates and returns the established session. Empty fields
	// are rejected locally before any network call.
	Login(ctx context.Context, username, password string) (domain.Session, error)
	// Register self-registers a new account; the assigned role is always
	// "user" regardless of the caller.
	Register(ctx context.Context, in RegisterInput) error
	// RegisterManaged creates an account of an explicit role on behalf of the
	// manager owning the session.
	RegisterManaged(ctx context.Context, session domain.Session, in RegisterInput) error
}

// DirectoryService drives the manager-only user directory view.
type DirectoryService interface {
	ListUsers(ctx context.Context, session domain.Session) ([]domain.User, error)
	NotifyUser(ctx context.Context, session domain.Session, userID int64) (string, error)
}

// SubjectParams are the raw URL parameters that select the certificate
// view's subject for a manager.
type SubjectParams struct {
	UserID   string
	Username string
}

// CertificateService drives the certificate view: subject resolution, the
// owner-scoped listing, the create/edit form workflow and per-certificate
// actions.
type CertificateService interface {
	// ResolveSubject decides whose certificates are in view. A "user" session
	// always resolves to itself; a manager session without both parameters
	// yields domain.ErrNoSubject.
	ResolveSubject(session domain.Session, params SubjectParams) (domain.Subject, error)
	// ListFor fetches all certificates and filters them to the subject.
	ListFor(ctx context.Context, session domain.Session, subject domain.Subject) ([]domain.Certificate, error)
	// Submit creates or updates depending on the form state. The owner of a
	// created certificate is the resolved subject.
	Submit(ctx context.Context, session domain.Session, subject domain.Subject, form domain.CertificateForm, in CertificateInput) error
	Delete(ctx context.Context, session domain.Session, certID int64) error
	NotifyEmail(ctx context.Context, session domain.Session, certID int64) (string, error)
	NotifySMS(ctx context.Context, session domain.Session, certID int64) (string, error)
}

// TransferService drives the bulk export/import round-trip.
type TransferService interface {
	Export(ctx context.Context, session domain.Session) (*ExportDocument, error)
	Import(ctx context.Context, session domain.Session, ownerID int64, filename string, file io.Reader) (*domain.ImportReport, error)
}
