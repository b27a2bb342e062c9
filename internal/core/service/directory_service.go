package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
	"github.com/Sypyx/certificatetrackermvp/internal/core/ports"
)

// DirectoryService implements the manager-only user directory workflow.
type DirectoryService struct {
	directory ports.DirectoryGateway
	notify    ports.NotificationGateway
	guard     *InflightGuard
	log       zerolog.Logger
}

func NewDirectoryService(directory ports.DirectoryGateway, notify ports.NotificationGateway, guard *InflightGuard, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{directory: directory, notify: notify, guard: guard, log: log}
}

func (s *DirectoryService) ListUsers(ctx context.Context, session domain.Session) ([]domain.User, error) {
	if !session.IsManager() {
		return nil, domain.ErrForbidden
	}
	return s.directory.ListUsers(ctx, session.Credential)
}

// NotifyUser asks the notification service to mail the user about their
// nearest certificate. The upstream confirmation text is returned verbatim.
func (s *DirectoryService) NotifyUser(ctx context.Context, session domain.Session, userID int64) (string, error) {
	if !session.IsManager() {
		return "", domain.ErrForbidden
	}
	key := actionKey(session, "notify-user", userID)
	if !s.guard.TryAcquire(key) {
		return "", domain.ErrActionInFlight
	}
	defer s.guard.Release(key)

	return s.notify.NotifyUser(ctx, session.Credential, userID)
}

// FilterUsers narrows already-fetched rows by a case-insensitive substring
// match on the username. It is pure: keyword changes never re-fetch.
func FilterUsers(users []domain.User, keyword string) []domain.User {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return users
	}
	matched := make([]domain.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Username), keyword) {
			matched = append(matched, u)
		}
	}
	return matched
}

func actionKey(session domain.Session, action string, id int64) string {
	return fmt.Sprintf("%s:%s:%d", session.Credential, action, id)
}
