package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ferrogaz/website/internal/middleware"
	"github.com/ferrogaz/website/internal/model"
	"github.com/ferrogaz/website/internal/service"
)

// ListMedia returns the flat media library, newest first.
// GET /api/dashboard/media
func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	list, err := h.media.List(r.Context())
	if err != nil {
		WriteInternalError(w, "Medya listesi yüklenemedi")
		return
	}
	WriteSuccess(w, list, nil)
}

// UploadMedia stores one uploaded file. The "section" form field picks
// the storage folder.
// POST /api/dashboard/media (multipart/form-data: file, section)
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(model.MaxUploadSize); err != nil {
		WriteBadRequest(w, "Geçersiz yükleme isteği")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteValidationError(w, map[string]string{"file": "gerekli"})
		return
	}
	defer func() { _ = file.Close() }()

	media, err := h.media.Upload(r.Context(), file, header, r.FormValue("section"), middleware.GetUserID(r))
	switch {
	case err == nil:
	case errors.Is(err, service.ErrUploadTooLarge):
		WriteError(w, http.StatusRequestEntityTooLarge, "too_large", "Dosya 10MB sınırını aşıyor", nil)
		return
	case errors.Is(err, service.ErrUnsupportedType):
		WriteValidationError(w, map[string]string{"file": "desteklenmeyen dosya türü"})
		return
	default:
		WriteInternalError(w, "Dosya yüklenemedi")
		return
	}

	WriteCreated(w, media)
}

// DeleteMedia removes one media item and its files.
// DELETE /api/dashboard/media?id=
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "id parametresi gerekli")
		return
	}

	if err := h.media.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrMediaNotFound) {
			WriteNotFound(w, "Medya bulunamadı")
			return
		}
		WriteInternalError(w, "Medya silinemedi")
		return
	}
	WriteSuccess(w, map[string]any{"deleted": true}, nil)
}
