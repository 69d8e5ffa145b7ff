package router

import (
	"net/http"

	"gardens/internal/http/handlers"
	"gardens/internal/http/middleware"
	"gardens/internal/security"

	"github.com/gorilla/mux"
)

// Setup wires the route table and wraps it in the session and CORS
// middleware. The middleware sit outside the mux so they also run for
// OPTIONS preflights and requests that fall through to 404.
func Setup(db handlers.Store, store *security.MemoryStore) http.Handler {
	r := mux.NewRouter()

	authHandler := handlers.NewAuthHandler(db)
	gardenHandler := handlers.NewGardenHandler(db)
	commentHandler := handlers.NewCommentHandler(db)
	flowerHandler := handlers.NewFlowerHandler(db)

	r.HandleFunc("/users", authHandler.Register).Methods("POST")
	r.HandleFunc("/sessions", authHandler.Login).Methods("POST")
	r.HandleFunc("/sessions", authHandler.Logout).Methods("DELETE")
	r.HandleFunc("/me", authHandler.Me).Methods("GET")

	r.HandleFunc("/gardens", gardenHandler.List).Methods("GET")
	r.HandleFunc("/gardens", gardenHandler.Create).Methods("POST")
	r.HandleFunc("/gardens/{id:[0-9]+}", gardenHandler.GetOne).Methods("GET")
	r.HandleFunc("/gardens/{id:[0-9]+}", gardenHandler.Update).Methods("PUT")
	r.HandleFunc("/gardens/{id:[0-9]+}", gardenHandler.Delete).Methods("DELETE")

	r.HandleFunc("/comments", commentHandler.Create).Methods("POST")
	r.HandleFunc("/comments/{id:[0-9]+}", commentHandler.Update).Methods("PUT")
	r.HandleFunc("/comments/{id:[0-9]+}", commentHandler.Delete).Methods("DELETE")

	r.HandleFunc("/flowers", flowerHandler.Create).Methods("POST")
	r.HandleFunc("/flowers/{id:[0-9]+}", flowerHandler.Delete).Methods("DELETE")

	// Anything else, including wrong methods, extra path segments and
	// non-numeric ids, is a bodiless 404.
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(notFound)

	return middleware.WithSession(store)(middleware.CORS(r))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
}
