package router

import (
	"encoding/json"
	"net/http"
	"net/url"
	"path/filepath"
	"testing"

	"gardens/internal/db"
	"gardens/internal/security"
)

// Full scenario against a real sqlite database: register, log in,
// build a garden, read it back, log out, and get turned away.
func TestScenario(t *testing.T) {
	database, err := db.Init("sqlite3", filepath.Join(t.TempDir(), "gardens.db"))
	if err != nil {
		t.Fatalf("init database: %v", err)
	}
	defer database.Close()

	store := security.NewSessionStore()
	h := Setup(database, store)

	// Register.
	w := doForm(h, http.MethodPost, "/users", url.Values{
		"first_name": {"A"}, "last_name": {"B"},
		"email": {"a@b.com"}, "password": {"pw"},
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register = %d, want 201", w.Code)
	}

	// Registering the same email again is a conflict.
	w = doForm(h, http.MethodPost, "/users", url.Values{
		"first_name": {"A"}, "last_name": {"B"},
		"email": {"a@b.com"}, "password": {"pw"},
	}, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("duplicate register = %d, want 422", w.Code)
	}

	// Wrong password.
	w = doForm(h, http.MethodPost, "/sessions", url.Values{
		"email": {"a@b.com"}, "password": {"nope"},
	}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("login with wrong password = %d, want 401", w.Code)
	}

	// Login.
	w = doForm(h, http.MethodPost, "/sessions", url.Values{
		"email": {"a@b.com"}, "password": {"pw"},
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("login = %d, want 201", w.Code)
	}
	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == security.CookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("login did not set the session cookie")
	}

	// Create a garden.
	w = doForm(h, http.MethodPost, "/gardens", url.Values{
		"name": {"Rose Yard"}, "author": {"A B"},
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create garden = %d, want 201", w.Code)
	}
	var created map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created["id"] != 1 {
		t.Fatalf("created id = %d, want 1", created["id"])
	}

	// The list view has no nested collections.
	w = doForm(h, http.MethodGet, "/gardens", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list gardens = %d, want 200", w.Code)
	}
	var list []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list has %d gardens, want 1", len(list))
	}
	if _, ok := list[0]["comments"]; ok {
		t.Error("list view nests comments")
	}

	// The single view nests empty collections.
	w = doForm(h, http.MethodGet, "/gardens/1", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get garden = %d, want 200", w.Code)
	}
	var detail struct {
		ID       int                      `json:"id"`
		Name     string                   `json:"name"`
		Comments []map[string]interface{} `json:"comments"`
		Flowers  []map[string]interface{} `json:"flowers"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode garden: %v", err)
	}
	if detail.Name != "Rose Yard" {
		t.Errorf("garden name = %q", detail.Name)
	}
	if detail.Comments == nil || len(detail.Comments) != 0 {
		t.Errorf("comments = %v, want []", detail.Comments)
	}
	if detail.Flowers == nil || len(detail.Flowers) != 0 {
		t.Errorf("flowers = %v, want []", detail.Flowers)
	}

	// Comment and flower.
	w = doForm(h, http.MethodPost, "/comments", url.Values{
		"gardenId": {"1"}, "content": {"lovely"},
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create comment = %d, want 201", w.Code)
	}
	w = doForm(h, http.MethodPost, "/flowers", url.Values{
		"gardenId": {"1"}, "color": {"red"}, "x": {"10"}, "y": {"20"},
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create flower = %d, want 201", w.Code)
	}

	w = doForm(h, http.MethodGet, "/gardens/1", nil, nil)
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode garden: %v", err)
	}
	if len(detail.Comments) != 1 {
		t.Fatalf("comments = %v, want one", detail.Comments)
	}
	if author := detail.Comments[0]["author"]; author != "A" {
		t.Errorf("comment author = %v, want the user's first name", author)
	}
	if len(detail.Flowers) != 1 {
		t.Fatalf("flowers = %v, want one", detail.Flowers)
	}

	// Edit the comment.
	w = doForm(h, http.MethodPut, "/comments/1", url.Values{"content": {"even lovelier"}}, cookie)
	if w.Code != http.StatusNoContent {
		t.Fatalf("update comment = %d, want 204", w.Code)
	}

	// Profile.
	w = doForm(h, http.MethodGet, "/me", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("me = %d, want 200", w.Code)
	}

	// Logout and attempt a mutation.
	w = doForm(h, http.MethodDelete, "/sessions", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("logout = %d, want 200", w.Code)
	}
	w = doForm(h, http.MethodPut, "/gardens/1", url.Values{"name": {"Weed Yard"}}, cookie)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("rename after logout = %d, want 401", w.Code)
	}

	// Unknown id.
	w = doForm(h, http.MethodGet, "/gardens/2", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get missing garden = %d, want 404", w.Code)
	}
}
