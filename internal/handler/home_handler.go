package handler

import (
	"net/http"

	"github.com/GoArmGo/PhotoShare/internal/usecase"
)

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Register — регистрация нового пользователя.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in usecase.RegisterInput
	if err := decodeJSON(r, &in); err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}

	user, err := h.home.Register(r.Context(), in)
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, user, h.logger)
}

// Login — вход по логину и паролю, возвращает токен доступа.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}

	session, err := h.auth.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, session, h.logger)
}

// Search — поиск тега (category=photo) или пользователя (category=user).
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.home.Search(r.Context(), q.Get("category"), q.Get("value"))
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result, h.logger)
}
