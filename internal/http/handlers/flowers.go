package handlers

import "net/http"

type FlowerHandler struct {
	db Store
}

func NewFlowerHandler(db Store) *FlowerHandler {
	return &FlowerHandler{db: db}
}

// Create places a flower in a garden. Any authenticated user may plant
// flowers anywhere. POST /flowers.
func (h *FlowerHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUID(r); !ok {
		notAuthenticated(w)
		return
	}

	gardenID, ok := formInt(r, "gardenId")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	x, okX := formInt(r, "x")
	y, okY := formInt(r, "y")
	if !okX || !okY {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if _, err := h.db.CreateFlower(gardenID, r.PostFormValue("color"), x, y); err != nil {
		internalError(w)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// Delete removes a flower. Flowers have no author; only the author of
// the parent garden may remove them. DELETE /flowers/{id}.
func (h *FlowerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUID(r)
	if !ok {
		notAuthenticated(w)
		return
	}

	id := pathID(r)
	flower, err := h.db.GetFlower(id)
	if err != nil {
		internalError(w)
		return
	}
	if flower == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	garden, err := h.db.GetGarden(flower.GardenID)
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

	deleted, err := h.db.DeleteFlower(id, uid)
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
