package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/GoArmGo/PhotoShare/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// Handler — обработчик HTTP-запросов PhotoShare.
type Handler struct {
	photos        usecase.PhotoUseCase
	profiles      usecase.ProfileUseCase
	tags          usecase.TagUseCase
	home          usecase.HomeUseCase
	auth          usecase.AuthUseCase
	uploadLimiter chan struct{}
	logger        *slog.Logger
}

// NewHandler создаёт новый экземпляр Handler.
// uploadLimiter ограничивает число одновременных загрузок; nil — без ограничения.
func NewHandler(
	photos usecase.PhotoUseCase,
	profiles usecase.ProfileUseCase,
	tags usecase.TagUseCase,
	home usecase.HomeUseCase,
	auth usecase.AuthUseCase,
	uploadLimiter chan struct{},
	logger *slog.Logger,
) *Handler {
	return &Handler{
		photos:        photos,
		profiles:      profiles,
		tags:          tags,
		home:          home,
		auth:          auth,
		uploadLimiter: uploadLimiter,
		logger:        logger,
	}
}

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

// statusFor сопоставляет ошибку бизнес-логики с HTTP-статусом.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAlreadyRated), errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondWithUseCaseError — отправляет ошибку usecase с подходящим статусом.
// Детали внутренних ошибок клиенту не отдаются.
func (h *Handler) respondWithUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if !usecase.IsClientError(err) {
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		respondWithError(w, status, "Внутренняя ошибка сервера", h.logger)
		return
	}

	h.logger.Warn("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)

	var vErr *usecase.ValidationError
	if errors.As(err, &vErr) {
		respondWithJSON(w, status, map[string]string{"error": vErr.Message, "field": vErr.Field}, h.logger)
		return
	}
	respondWithError(w, status, err.Error(), h.logger)
}

// pathID читает положительный числовой параметр пути.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("некорректный параметр %s: %w", name, domain.ErrInvalidArgument)
	}
	return id, nil
}

// pageParam читает номер страницы; отсутствующий или некорректный дает 1.
func pageParam(r *http.Request) int {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	return page
}

// decodeJSON читает тело запроса в v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("некорректное тело запроса: %v: %w", err, domain.ErrInvalidArgument)
	}
	return nil
}
