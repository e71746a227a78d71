package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/couple-gallery/internal/model"
	"github.com/sakif/couple-gallery/internal/service"
)

// PhotoHandler serves the gallery photos. The same handler is mounted under
// /api/photos and /api/artworks; the two paths are aliases.
type PhotoHandler struct {
	service *service.PhotoService
	logger  *slog.Logger
}

func NewPhotoHandler(svc *service.PhotoService, logger *slog.Logger) *PhotoHandler {
	return &PhotoHandler{service: svc, logger: logger}
}

// createPhotoRequest is the body of POST /api/admin/photos. Server-owned
// fields (id, timestamps) are not accepted.
type createPhotoRequest struct {
	Title       string     `json:"title"`
	EnTitle     string     `json:"en_title"`
	ImageURL    string     `json:"image_url"`
	Description string     `json:"description"`
	Date        string     `json:"date"`
	Tags        model.Tags `json:"tags"`
}

// HandleList handles GET /api/photos, newest date first.
func (h *PhotoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	photos, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, photos)
}

// HandleGet handles GET /api/photos/{id}.
func (h *PhotoHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	photo, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, photo)
}

// HandleCreate handles POST /api/admin/photos.
func (h *PhotoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createPhotoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := h.service.Create(r.Context(), &model.Photo{
		Title:       req.Title,
		EnTitle:     req.EnTitle,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Date:        req.Date,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id, Message: "photo created"})
}

// HandleUpdate handles PUT /api/admin/photos/{id}. Absent fields keep their
// stored values.
func (h *PhotoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var patch model.PhotoPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.service.Update(r.Context(), id, patch); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "photo updated"})
}

// HandleDelete handles DELETE /api/admin/photos/{id}. The stored image
// object is not removed; the admin UI deletes it through the upload API.
func (h *PhotoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "photo deleted"})
}
