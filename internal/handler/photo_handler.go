package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/GoArmGo/PhotoShare/internal/usecase"
)

// multipartOverhead — запас на поля формы сверх размера файла
const multipartOverhead = 64 << 10

type rateRequest struct {
	Value int `json:"value"`
}

type commentRequest struct {
	Text string `json:"text"`
}

// ListPhotos — страница всех фото.
func (h *Handler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := h.photos.List(r.Context(), pageParam(r))
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, photos, h.logger)
}

// UploadPhoto — загрузка фото из multipart-формы: title, tags (повторяемое поле), source.
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if h.uploadLimiter != nil {
		select {
		case h.uploadLimiter <- struct{}{}:
			defer func() { <-h.uploadLimiter }()
		default:
			h.logger.Warn("upload limit reached")
			respondWithError(w, http.StatusTooManyRequests, "Слишком много одновременных загрузок", h.logger)
			return
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, usecase.MaxPhotoSize+multipartOverhead)
	if err := r.ParseMultipartForm(usecase.MaxPhotoSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, "Файл слишком большой", h.logger)
			return
		}
		h.logger.Warn("failed to parse upload form", "error", err)
		respondWithError(w, http.StatusBadRequest, "Некорректная форма загрузки", h.logger)
		return
	}
	defer r.MultipartForm.RemoveAll()

	tagIDs, ok := parseTagIDs(r.MultipartForm.Value["tags"])
	if !ok {
		respondWithJSON(w, http.StatusBadRequest, map[string]string{"error": "must be numeric ids", "field": "tags"}, h.logger)
		return
	}

	in := usecase.UploadInput{
		Title:  r.FormValue("title"),
		TagIDs: tagIDs,
	}

	file, header, err := r.FormFile("source")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// пустой File дает ошибку валидации в usecase
	case err != nil:
		h.logger.Warn("failed to read uploaded file", "error", err)
		respondWithError(w, http.StatusBadRequest, "Некорректный файл", h.logger)
		return
	default:
		defer file.Close()
		contentType, err := sniffContentType(file)
		if err != nil {
			h.logger.Error("failed to read uploaded file", "error", err)
			respondWithError(w, http.StatusInternalServerError, "Ошибка чтения файла", h.logger)
			return
		}
		in.File = file
		in.Size = header.Size
		in.ContentType = contentType
	}

	photo, err := h.photos.Upload(r.Context(), ViewerFrom(r.Context()), in)
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, photo, h.logger)
}

// ViewPhoto — фото со всеми подробностями и страницей комментариев.
func (h *Handler) ViewPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}

	view, err := h.photos.View(r.Context(), ViewerFrom(r.Context()), id, pageParam(r))
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view, h.logger)
}

// EditPhoto — смена заголовка и тегов.
func (h *Handler) EditPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	var in usecase.EditInput
	if err := decodeJSON(r, &in); err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}

	photo, err := h.photos.Edit(r.Context(), ViewerFrom(r.Context()), id, in)
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, photo, h.logger)
}

func (h *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	if err := h.photos.Delete(r.Context(), ViewerFrom(r.Context()), id); err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PhotoSource — отдает файл фото из объектного хранилища.
func (h *Handler) PhotoSource(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}

	file, err := h.photos.Source(r.Context(), id)
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	defer file.Close()

	// Content-Type определит net/http по первым байтам
	if _, err := io.Copy(w, file); err != nil {
		h.logger.Error("failed to stream photo file", "photo_id", id, "error", err)
	}
}

func (h *Handler) RatePhoto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	var req rateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}

	summary, err := h.photos.Rate(r.Context(), ViewerFrom(r.Context()), id, req.Value)
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, summary, h.logger)
}

func (h *Handler) CommentPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}

	comment, err := h.photos.Comment(r.Context(), ViewerFrom(r.Context()), id, req.Text)
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, comment, h.logger)
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	if err := h.photos.DeleteComment(r.Context(), ViewerFrom(r.Context()), id); err != nil {
		h.respondWithUseCaseError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseTagIDs принимает как повторяемое поле tags, так и список через запятую.
func parseTagIDs(values []string) ([]int64, bool) {
	var ids []int64
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil || id <= 0 {
				return nil, false
			}
			ids = append(ids, id)
		}
	}
	return ids, true
}

// sniffContentType определяет тип файла по содержимому, а не по заголовку клиента.
func sniffContentType(file multipart.File) (string, error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}
