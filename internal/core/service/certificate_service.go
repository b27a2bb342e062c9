package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
	"github.com/Sypyx/certificatetrackermvp/internal/core/ports"
)

// CertificateService implements the certificate view workflow: subject
// resolution, the owner-scoped listing and the create/edit/delete actions.
type CertificateService struct {
	certs  ports.CertificateGateway
	notify ports.NotificationGateway
	guard  *InflightGuard
	log    zerolog.Logger
}

func NewCertificateService(certs ports.CertificateGateway, notify ports.NotificationGateway, guard *InflightGuard, log zerolog.Logger) *CertificateService {
	return &CertificateService{certs: certs, notify: notify, guard: guard, log: log}
}

// ResolveSubject decides whose certificates are in view. A regular user is
// always their own subject, whatever the URL says. A manager must arrive
// from the directory with both subject parameters; otherwise ErrNoSubject
// sends them back there.
func (s *CertificateService) ResolveSubject(session domain.Session, params ports.SubjectParams) (domain.Subject, error) {
	if !session.IsManager() {
		return domain.Subject{ID: session.Identity.ID, Username: session.Identity.Username}, nil
	}

	id, err := strconv.ParseInt(params.UserID, 10, 64)
	if err != nil || id == 0 || params.Username == "" {
		return domain.Subject{}, domain.ErrNoSubject
	}
	return domain.Subject{ID: id, Username: params.Username}, nil
}

// ListFor fetches the full certificate collection and keeps only the
// subject's records. The upstream list endpoint is unscoped, so the
// ownership filter here is what keeps subjects apart.
func (s *CertificateService) ListFor(ctx context.Context, session domain.Session, subject domain.Subject) ([]domain.Certificate, error) {
	certs, err := s.certs.List(ctx, session.Credential)
	if err != nil {
		return nil, err
	}
	return domain.FilterOwned(certs, subject.ID), nil
}

// Submit creates or updates depending on the form state. Both paths are a
// single upstream call; the caller re-fetches the listing afterwards
// regardless of the outcome.
func (s *CertificateService) Submit(ctx context.Context, session domain.Session, subject domain.Subject, form domain.CertificateForm, in ports.CertificateInput) error {
	if !session.IsManager() {
		return domain.ErrForbidden
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.DateStart == "" || in.DateEnd == "" {
		return domain.ErrEmptyFields
	}
	in.OwnerID = subject.ID

	key := actionKey(session, "submit-certificate", subject.ID)
	if !s.guard.TryAcquire(key) {
		return domain.ErrActionInFlight
	}
	defer s.guard.Release(key)

	if certID, editing := form.EditingID(); editing {
		return s.certs.Update(ctx, session.Credential, certID, in)
	}
	return s.certs.Create(ctx, session.Credential, in)
}

func (s *CertificateService) Delete(ctx context.Context, session domain.Session, certID int64) error {
	if !session.IsManager() {
		return domain.ErrForbidden
	}
	key := actionKey(session, "delete-certificate", certID)
	if !s.guard.TryAcquire(key) {
		return domain.ErrActionInFlight
	}
	defer s.guard.Release(key)

	return s.certs.Delete(ctx, session.Credential, certID)
}

func (s *CertificateService) NotifyEmail(ctx context.Context, session domain.Session, certID int64) (string, error) {
	key := actionKey(session, "notify-email", certID)
	if !s.guard.TryAcquire(key) {
		return "", domain.ErrActionInFlight
	}
	defer s.guard.Release(key)

	return s.notify.NotifyCertificateEmail(ctx, session.Credential, certID)
}

func (s *CertificateService) NotifySMS(ctx context.Context, session domain.Session, certID int64) (string, error) {
	key := actionKey(session, "notify-sms", certID)
	if !s.guard.TryAcquire(key) {
		return "", domain.ErrActionInFlight
	}
	defer s.guard.Release(key)

	return s.notify.NotifyCertificateSMS(ctx, session.Credential, certID)
}
