package ports

import (
	"context"
	"io"

	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
)

// RegisterInput carries the fields of a registration request. Phone is
// optional; Role is ignored for self-registration (always "user").
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Phone    string
	Role     string
}

// IdentityGateway talks to the auth service. Registration reuses one upstream
// endpoint: RegisterManaged attaches the caller's bearer credential and an
// explicit role, Register does not.
type IdentityGateway interface {
	Login(ctx context.Context, username, password string) (domain.Session, error)
	Register(ctx context.Context, in RegisterInput) error
	RegisterManaged(ctx context.Context, credential string, in RegisterInput) error
}

// DirectoryGateway reads the user service. The list comes back in upstream
// insertion order and is rendered as-is.
type DirectoryGateway interface {
	ListUsers(ctx context.Context, credential string) ([]domain.User, error)
}

// CertificateInput carries the fields of a create or update request. Dates
// stay in wire form; the certificate service validates them.
type CertificateInput struct {
	Name      string
	DateStart string
	DateEnd   string
	OwnerID   int64
}

// ExportDocument is a streamed spreadsheet export. The caller owns Body and
// must close it.
type ExportDocument struct {
	ContentType string
	Body        io.ReadCloser
}

// CertificateGateway talks to the certificate service. List is deliberately
// unscoped (the upstream endpoint returns every certificate); ownership
// filtering is the caller's job. Keeping the gateway behind this interface
// lets a subject-scoped backend be substituted without touching controllers.
type CertificateGateway interface {
	List(ctx context.Context, credential string) ([]domain.Certificate, error)
	Create(ctx context.Context, credential string, in CertificateInput) error
	Update(ctx context.Context, credential string, certID int64, in CertificateInput) error
	Delete(ctx context.Context, credential string, certID int64) error
	Export(ctx context.Context, credential string) (*ExportDocument, error)
	Import(ctx context.Context, credential string, ownerID int64, filename string, file io.Reader) (*domain.ImportReport, error)
}

// NotificationGateway triggers notification dispatch. Each call returns the
// upstream's human-readable confirmation message, surfaced verbatim.
type NotificationGateway interface {
	NotifyCertificateEmail(ctx context.Context, credential string, certID int64) (string, error)
	NotifyCertificateSMS(ctx context.Context, credential string, certID int64) (string, error)
	NotifyUser(ctx context.Context, credential string, userID int64) (string, error)
}
