package domain

const (
	RoleManager = "manager"
	RoleUser    = "user"
)

// Identity is the authenticated principal as issued by the auth service.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Session pairs the opaque bearer credential with the identity it was issued
// for. The two always travel together: a persisted session missing either
// half is invalid and must be treated as absent.
type Session struct {
	Credential string
	Identity   Identity
}

// Valid reports whether both halves of the session are present.
func (s Session) Valid() bool {
	return s.Credential != "" && s.Identity.ID != 0 && s.Identity.Role != ""
}

func (s Session) IsManager() bool { return s.Identity.Role == RoleManager }

// Subject is the user whose certificates are being viewed or managed. For a
// "user" session it is always the session's own identity; for a manager it is
// carried through the certificate view's URL parameters.
type Subject struct {
	ID       int64
	Username string
}
