package service

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
	"github.com/Sypyx/certificatetrackermvp/internal/core/ports"
)

// TransferService implements the manager-only bulk export/import round-trip
// against the certificate service.
type TransferService struct {
	certs ports.CertificateGateway
	guard *InflightGuard
	log   zerolog.Logger
}

func NewTransferService(certs ports.CertificateGateway, guard *InflightGuard, log zerolog.Logger) *TransferService {
	return &TransferService{certs: certs, guard: guard, log: log}
}

// Export streams the upstream spreadsheet through without inspecting its
// content. The caller owns the returned body.
func (s *TransferService) Export(ctx context.Context, session domain.Session) (*ports.ExportDocument, error) {
	if !session.IsManager() {
		return nil, domain.ErrForbidden
	}
	return s.certs.Export(ctx, session.Credential)
}

// Import forwards the uploaded spreadsheet for the designated subject and
// returns the per-row report. A missing subject is rejected locally, before
// any network call.
func (s *TransferService) Import(ctx context.Context, session domain.Session, ownerID int64, filename string, file io.Reader) (*domain.ImportReport, error) {
	if !session.IsManager() {
		return nil, domain.ErrForbidden
	}
	if ownerID == 0 {
		return nil, domain.ErrNoSubject
	}

	key := actionKey(session, "import", ownerID)
	if !s.guard.TryAcquire(key) {
		return nil, domain.ErrActionInFlight
	}
	defer s.guard.Release(key)

	report, err := s.certs.Import(ctx, session.Credential, ownerID, filename, file)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("owner_id", ownerID).Int("created", len(report.Created)).Int("errors", len(report.Errors)).Msg("import finished")
	return report, nil
}
