package handlers

import (
	"net/http"

	"gardens/internal/http/middleware"
	"gardens/internal/models"
	"gardens/internal/security"
)

type AuthHandler struct {
	db Store
}

func NewAuthHandler(db Store) *AuthHandler {
	return &AuthHandler{db: db}
}

// Register creates a user with a unique email. POST /users.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	firstName := r.PostFormValue("first_name")
	lastName := r.PostFormValue("last_name")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	existing, err := h.db.GetUserByEmail(email)
	if err != nil {
		internalError(w)
		return
	}
	if existing != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "No duplicate email"})
		return
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		internalError(w)
		return
	}
	if _, err := h.db.CreateUser(firstName, lastName, email, hash); err != nil {
		internalError(w)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// Login verifies the credentials and marks the session authenticated.
// POST /sessions.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := h.db.GetUserByEmail(email)
	if err != nil {
		internalError(w)
		return
	}
	if user == nil || !security.ComparePasswords(user.PasswordHash, password) {
		notAuthenticated(w)
		return
	}

	security.SetUserID(middleware.Session(r), user.ID)
	w.WriteHeader(http.StatusCreated)
}

// Logout removes the uid from the session. Never fails, so calling it
// while logged out is a no-op 200. DELETE /sessions.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	security.ClearUserID(middleware.Session(r))
	w.WriteHeader(http.StatusOK)
}

// Me returns the authenticated user's profile and gardens. GET /me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUID(r)
	if !ok {
		notAuthenticated(w)
		return
	}

	user, err := h.db.GetUserByID(uid)
	if err != nil {
		internalError(w)
		return
	}
	if user == nil {
		// The session outlived the user.
		notAuthenticated(w)
		return
	}

	gardens, err := h.db.GetUserGardens(uid)
	if err != nil {
		internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		FirstName string          `json:"first_name"`
		LastName  string          `json:"last_name"`
		ID        int             `json:"id"`
		Gardens   []models.Garden `json:"gardens"`
	}{user.FirstName, user.LastName, user.ID, gardens})
}
