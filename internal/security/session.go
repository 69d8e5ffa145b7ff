package security

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"sync"

	"github.com/gorilla/sessions"
)

// CookieName is the cookie that carries the session token.
const CookieName = "sessionId"

// MemoryStore is an in-process sessions.Store keyed by an opaque random
// token. Records live until the process exits; logging out clears the
// uid but keeps the record. There is deliberately no eviction here --
// swap in another sessions.Store implementation if that is needed.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[interface{}]interface{}
	options  *sessions.Options
}

func NewSessionStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]map[interface{}]interface{}),
		options: &sessions.Options{
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

// Get returns the session for the request, cached per request by the
// gorilla registry.
func (s *MemoryStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New resolves the session token from the request cookie. A live token
// attaches the existing shared record; anything else (no cookie, or an
// unknown token) starts a fresh session.
func (s *MemoryStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	if values, ok := s.Lookup(c.Value); ok {
		session.ID = c.Value
		session.Values = values
		session.IsNew = false
	}
	return session, nil
}

// Save installs the session record under its token, minting a token on
// first save, and re-sends the cookie.
func (s *MemoryStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.ID == "" {
		session.ID = generateToken()
	}
	s.mu.Lock()
	s.sessions[session.ID] = session.Values
	s.mu.Unlock()

	http.SetCookie(w, sessions.NewCookie(session.Name(), session.ID, session.Options))
	return nil
}

// Create installs an empty record and returns its token.
func (s *MemoryStore) Create() string {
	token := generateToken()
	s.mu.Lock()
	s.sessions[token] = make(map[interface{}]interface{})
	s.mu.Unlock()
	return token
}

// Lookup returns the shared record for token. Mutations to the returned
// map are visible to every later Lookup of the same token.
func (s *MemoryStore) Lookup(token string) (map[interface{}]interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	values, ok := s.sessions[token]
	return values, ok
}

// UserID returns the authenticated user id in the session, if any.
func UserID(session *sessions.Session) (int, bool) {
	uid, ok := session.Values["uid"].(int)
	return uid, ok
}

func SetUserID(session *sessions.Session, uid int) {
	session.Values["uid"] = uid
}

func ClearUserID(session *sessions.Session) {
	delete(session.Values, "uid")
}

func generateToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("security: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
