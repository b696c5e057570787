package handler

import (
	"net/http"

	"github.com/GoArmGo/PhotoShare/internal/usecase"
)

func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.List(r.Context(), pageParam(r))
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, profiles, h.logger)
}

// ViewProfile — профиль и страница фото пользователя.
func (h *Handler) ViewProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}

	view, err := h.profiles.View(r.Context(), id, pageParam(r))
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view, h.logger)
}

// EditUser — смена почты и пароля.
func (h *Handler) EditUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	var in usecase.EditUserInput
	if err := decodeJSON(r, &in); err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}

	if err := h.profiles.EditUser(r.Context(), ViewerFrom(r.Context()), id, in); err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EditUserdata — смена имени и фамилии.
func (h *Handler) EditUserdata(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	var in usecase.EditUserdataInput
	if err := decodeJSON(r, &in); err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}

	if err := h.profiles.EditUserdata(r.Context(), ViewerFrom(r.Context()), id, in); err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	if err := h.profiles.Delete(r.Context(), ViewerFrom(r.Context()), id); err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
