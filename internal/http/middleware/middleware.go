package middleware

import (
	"context"
	"net/http"

	"gardens/internal/security"

	"github.com/gorilla/sessions"
)

type contextKey int

const sessionKey contextKey = iota

// Session returns the session record attached to the request, or nil if
// the session middleware did not run.
func Session(r *http.Request) *sessions.Session {
	sess, _ := r.Context().Value(sessionKey).(*sessions.Session)
	return sess
}

// WithSession resolves or creates the session for every request,
// including OPTIONS and requests that end up 404. The cookie is
// re-sent on every response, and the record is shared by reference so
// handler mutations persist without an explicit save.
func WithSession(store *security.MemoryStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, _ := store.Get(r, security.CookieName)
			_ = sess.Save(r, w)

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CORS echoes the request Origin and allows credentialed requests on
// every response. OPTIONS preflights are answered here and go no
// further.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", r.Header.Get("Origin"))
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Origin")
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
