// Package session persists the operator's session in a pair of client-side
// cookies, the direct counterpart of the two keyed entries the browser
// client kept in local storage.
package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
)

const (
	credentialCookie = "access_token"
	identityCookie   = "current_user"
)

// CookieStore implements ports.SessionStore. The credential cookie carries
// the opaque bearer token as-is; the identity cookie carries the identity
// record as base64url-encoded JSON. Both are always written and cleared
// together.
type CookieStore struct {
	secure bool
	ttl    time.Duration
}

func NewCookieStore(secure bool, ttl time.Duration) *CookieStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CookieStore{secure: secure, ttl: ttl}
}

func (s *CookieStore) Set(w http.ResponseWriter, sess domain.Session) {
	identity, err := json.Marshal(sess.Identity)
	if err != nil {
		// Identity is a plain struct; this cannot fail with real data. Write
		// nothing rather than half a session.
		return
	}
	maxAge := int(s.ttl.Seconds())
	http.SetCookie(w, s.cookie(credentialCookie, sess.Credential, maxAge))
	http.SetCookie(w, s.cookie(identityCookie, base64.URLEncoding.EncodeToString(identity), maxAge))
}

// Get returns the persisted session. Any malformed half makes the whole
// session absent; it never surfaces as an error.
func (s *CookieStore) Get(r *http.Request) (domain.Session, bool) {
	credential, err := r.Cookie(credentialCookie)
	if err != nil || credential.Value == "" {
		return domain.Session{}, false
	}
	encoded, err := r.Cookie(identityCookie)
	if err != nil || encoded.Value == "" {
		return domain.Session{}, false
	}

	raw, err := base64.URLEncoding.DecodeString(encoded.Value)
	if err != nil {
		return domain.Session{}, false
	}
	var identity domain.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return domain.Session{}, false
	}

	sess := domain.Session{Credential: credential.Value, Identity: identity}
	if !sess.Valid() {
		return domain.Session{}, false
	}
	return sess, true
}

func (s *CookieStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie(credentialCookie, "", -1))
	http.SetCookie(w, s.cookie(identityCookie, "", -1))
}

func (s *CookieStore) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
