package handlers

import "net/http"

type CommentHandler struct {
	db Store
}

func NewCommentHandler(db Store) *CommentHandler {
	return &CommentHandler{db: db}
}

// Create adds a comment to a garden, authored by the authenticated
// user. POST /comments.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUID(r)
	if !ok {
		notAuthenticated(w)
		return
	}

	gardenID, ok := formInt(r, "gardenId")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if _, err := h.db.CreateComment(gardenID, r.PostFormValue("content"), uid); err != nil {
		internalError(w)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// Update replaces a comment's content. Only its author may do so.
// PUT /comments/{id}.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUID(r)
	if !ok {
		notAuthenticated(w)
		return
	}

	id := pathID(r)
	comment, err := h.db.GetComment(id)
	if err != nil {
		internalError(w)
		return
	}
	if comment == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if comment.AuthorID != uid {
		notOwner(w)
		return
	}

	updated, err := h.db.UpdateComment(id, r.PostFormValue("content"), uid)
	if err != nil {
		internalError(w)
		return
	}
	if !updated {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a comment. Only its author may do so; garden ownership
// is not consulted. DELETE /comments/{id}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUID(r)
	if !ok {
		notAuthenticated(w)
		return
	}

	id := pathID(r)
	comment, err := h.db.GetComment(id)
	if err != nil {
		internalError(w)
		return
	}
	if comment == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if comment.AuthorID != uid {
		notOwner(w)
		return
	}

	deleted, err := h.db.DeleteComment(id, uid)
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
