package handler

import (
	"net/http"
)

type tagRequest struct {
	Name string `json:"name"`
}

// ListTags — страница тегов; с ?all=true возвращает все теги без пагинации.
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("all") == "true" {
		tags, err := h.tags.All(r.Context())
		if err != nil {
			h.respondWithUseCaseError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, tags, h.logger)
		return
	}

	tags, err := h.tags.List(r.Context(), pageParam(r))
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tags, h.logger)
}

func (h *Handler) AddTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}

	tag, err := h.tags.Add(r.Context(), ViewerFrom(r.Context()), req.Name)
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, tag, h.logger)
}

func (h *Handler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	if err := h.tags.Delete(r.Context(), ViewerFrom(r.Context()), id); err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TagPhotos — страница фото с тегом.
func (h *Handler) TagPhotos(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}

	photos, err := h.photos.ListByTag(r.Context(), id, pageParam(r))
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, photos, h.logger)
}
