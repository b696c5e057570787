package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/go-chi/chi/v5/middleware"
)

type viewerKey struct{}

// RequestLogger — middleware для логирования HTTP-запросов.
func RequestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			r = r.WithContext(WithViewer(r.Context(), domain.Viewer{}))

			// Оборачиваем ResponseWriter, чтобы знать статус
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			logger.Info("http request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"user_id", ViewerFrom(r.Context()).UserID,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// responseWriter нужен, чтобы перехватывать код ответа
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Authenticator проверяет токен доступа и возвращает автора запроса
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Viewer, error)
}

// Authenticate кладет в контекст автора запроса из заголовка
// "Authorization: Bearer <token>". Без заголовка запрос анонимный,
// с недействительным токеном или токеном удаленного пользователя отклоняется с 401.
func Authenticate(auth Authenticator, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respondWithError(w, http.StatusUnauthorized, "Некорректный заголовок Authorization", logger)
				return
			}

			viewer, err := auth.Authenticate(r.Context(), token)
			if errors.Is(err, domain.ErrUnauthorized) {
				logger.Warn("invalid access token", "path", r.URL.Path, "error", err)
				respondWithError(w, http.StatusUnauthorized, "Недействительный токен", logger)
				return
			}
			if err != nil {
				logger.Error("failed to authenticate request", "path", r.URL.Path, "error", err)
				respondWithError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера", logger)
				return
			}

			// RequestLogger читает viewer из того же указателя
			if holder, ok := r.Context().Value(viewerKey{}).(*domain.Viewer); ok {
				*holder = viewer
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), viewer)))
		})
	}
}

// WithViewer возвращает контекст с автором запроса.
func WithViewer(ctx context.Context, viewer domain.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, &viewer)
}

// ViewerFrom возвращает автора запроса; для анонимного — нулевое значение.
func ViewerFrom(ctx context.Context) domain.Viewer {
	if v, ok := ctx.Value(viewerKey{}).(*domain.Viewer); ok && v != nil {
		return *v
	}
	return domain.Viewer{}
}
