package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateTokensUnique(t *testing.T) {
	store := NewSessionStore()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := store.Create()
		if token == "" {
			t.Fatal("Create returned an empty token")
		}
		if seen[token] {
			t.Fatalf("Create returned a duplicate token %q", token)
		}
		seen[token] = true

		if _, ok := store.Lookup(token); !ok {
			t.Fatalf("Lookup(%q) missed a freshly created token", token)
		}
	}
}

func TestLookupUnknownToken(t *testing.T) {
	store := NewSessionStore()
	if _, ok := store.Lookup("no-such-token"); ok {
		t.Error("Lookup of an unknown token reported a record")
	}
}

func TestRecordSharedByReference(t *testing.T) {
	store := NewSessionStore()
	token := store.Create()

	rec, ok := store.Lookup(token)
	if !ok {
		t.Fatal("Lookup missed the created token")
	}
	rec["uid"] = 7

	again, ok := store.Lookup(token)
	if !ok {
		t.Fatal("second Lookup missed the token")
	}
	if uid, _ := again["uid"].(int); uid != 7 {
		t.Errorf("uid = %v, want 7: record is not shared across lookups", again["uid"])
	}
}

// A session mutated during one request must be observed by the next
// request bearing the same cookie.
func TestSessionSurvivesAcrossRequests(t *testing.T) {
	store := NewSessionStore()

	r1 := httptest.NewRequest(http.MethodGet, "/", nil)
	w1 := httptest.NewRecorder()
	sess, err := store.Get(r1, CookieName)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !sess.IsNew {
		t.Error("session without a cookie should be new")
	}
	if err := sess.Save(r1, w1); err != nil {
		t.Fatalf("Save: %v", err)
	}
	SetUserID(sess, 7)

	var cookie *http.Cookie
	for _, c := range w1.Result().Cookies() {
		if c.Name == CookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("Save did not set the session cookie")
	}

	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.AddCookie(cookie)
	sess2, err := store.New(r2, CookieName)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if sess2.IsNew {
		t.Error("session with a live cookie should not be new")
	}
	if uid, ok := UserID(sess2); !ok || uid != 7 {
		t.Errorf("UserID = %v, %v; want 7, true", uid, ok)
	}
}

func TestUnknownCookieStartsFresh(t *testing.T) {
	store := NewSessionStore()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "stale-token"})
	sess, err := store.New(r, CookieName)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !sess.IsNew {
		t.Error("unknown token should start a fresh session")
	}
	if sess.ID == "stale-token" {
		t.Error("fresh session kept the stale token")
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "pw" {
		t.Fatal("hash equals the plaintext password")
	}
	if !ComparePasswords(hash, "pw") {
		t.Error("correct password rejected")
	}
	if ComparePasswords(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}
