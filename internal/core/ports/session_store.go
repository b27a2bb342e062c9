package ports

import (
	"net/http"

	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
)

// SessionStore persists the session on the client side. Implementations must
// keep the credential and the identity atomic as observed by readers: Set
// writes both, Clear removes both, and Get reports absent whenever either
// half is missing or unparseable.
type SessionStore interface {
	Set(w http.ResponseWriter, s domain.Session)
	Get(r *http.Request) (domain.Session, bool)
	Clear(w http.ResponseWriter)
}
