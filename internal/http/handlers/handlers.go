package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"gardens/internal/http/middleware"
	"gardens/internal/models"
	"gardens/internal/security"

	"github.com/gorilla/mux"
)

// Store is the repository surface the handlers need. *db.DB satisfies
// it; tests substitute a spy.
type Store interface {
	CreateUser(firstName, lastName, email, passwordHash string) (int, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id int) (*models.User, error)

	CreateGarden(name, author string, authorID int) (int, error)
	GetGardens() ([]models.Garden, error)
	GetUserGardens(authorID int) ([]models.Garden, error)
	GetGarden(id int) (*models.Garden, error)
	GetGardenDetail(id int) (*models.GardenDetail, error)
	UpdateGarden(id int, name string, authorID int) (bool, error)
	DeleteGarden(id, authorID int) (bool, error)

	CreateComment(gardenID int, content string, authorID int) (int, error)
	GetComment(id int) (*models.Comment, error)
	UpdateComment(id int, content string, authorID int) (bool, error)
	DeleteComment(id, authorID int) (bool, error)

	CreateFlower(gardenID int, color string, x, y int) (int, error)
	GetFlower(id int) (*models.Flower, error)
	DeleteFlower(id, ownerID int) (bool, error)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func notAuthenticated(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Not authenticated"})
}

func notOwner(w http.ResponseWriter) {
	writeJSON(w, http.StatusForbidden, map[string]string{"message": "Can only modify owned resources"})
}

func internalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
}

// currentUID returns the authenticated user id from the request's
// session, reporting false for anonymous sessions.
func currentUID(r *http.Request) (int, bool) {
	sess := middleware.Session(r)
	if sess == nil {
		return 0, false
	}
	return security.UserID(sess)
}

// pathID returns the {id} route variable. Routes constrain it to
// digits, so it always parses on matched requests.
func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

func formInt(r *http.Request, key string) (int, bool) {
	n, err := strconv.Atoi(r.PostFormValue(key))
	if err != nil {
		return 0, false
	}
	return n, true
}
