package handlers

import "net/http"

type GardenHandler struct {
	db Store
}

func NewGardenHandler(db Store) *GardenHandler {
	return &GardenHandler{db: db}
}

// List returns all garden summaries, without nested comments or
// flowers. GET /gardens.
func (h *GardenHandler) List(w http.ResponseWriter, r *http.Request) {
	gardens, err := h.db.GetGardens()
	if err != nil {
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, gardens)
}

// GetOne returns a garden with its comments and flowers nested.
// GET /gardens/{id}.
func (h *GardenHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	detail, err := h.db.GetGardenDetail(pathID(r))
	if err != nil {
		internalError(w)
		return
	}
	if detail == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Create makes a new garden owned by the authenticated user and
// returns its id. POST /gardens.
func (h *GardenHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUID(r)
	if !ok {
		notAuthenticated(w)
		return
	}

	name := r.PostFormValue("name")
	author := r.PostFormValue("author")
	id, err := h.db.CreateGarden(name, author, uid)
	if err != nil {
		internalError(w)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"id": id})
}

// Update renames a garden. Only its author may do so. PUT /gardens/{id}.
func (h *GardenHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUID(r)
	if !ok {
		notAuthenticated(w)
		return
	}

	id := pathID(r)
	garden, err := h.db.GetGarden(id)
	if err != nil {
		internalError(w)
		return
	}
	if garden == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if garden.AuthorID != uid {
		notOwner(w)
		return
	}

	updated, err := h.db.UpdateGarden(id, r.PostFormValue("name"), uid)
	if err != nil {
		internalError(w)
		return
	}
	if !updated {
		// The row vanished between the read and the write.
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a garden and everything in it. Only its author may do
// so. DELETE /gardens/{id}.
func (h *GardenHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUID(r)
	if !ok {
		notAuthenticated(w)
		return
	}

	id := pathID(r)
	garden, err := h.db.GetGarden(id)
	if err != nil {
		internalError(w)
		return
	}
	if garden == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if garden.AuthorID != uid {
		notOwner(w)
		return
	}

	deleted, err := h.db.DeleteGarden(id, uid)
	if err != nil {
		internalError(w)
		return
	}
	if !deleted {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
