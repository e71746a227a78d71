package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sakif/couple-gallery/internal/apperror"
	"github.com/sakif/couple-gallery/internal/service"
)

// multipartOverhead is the slack allowed on top of the file cap for the
// multipart boundaries, part headers and the folder field.
const multipartOverhead = 1 << 20

// multipartMemory is how much of a form is buffered in memory; the rest
// spills to temp files that are removed after the request.
const multipartMemory = 8 << 20

// UploadHandler accepts image uploads for the admin page.
//
// Responses use the {success, ...} envelope the upload widget expects:
//
//	200 {"success": true, "url": "...", "name": "photos/..."}
//	400 {"success": false, "error": "file too large, maximum is 10 MB"}
//	500 {"success": false, "error": "<storage backend message>"}
type UploadHandler struct {
	service *service.UploadService
	logger  *slog.Logger
}

func NewUploadHandler(svc *service.UploadService, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{service: svc, logger: logger}
}

type uploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	Name    string `json:"name,omitempty"`
	Error   string `json:"error,omitempty"`
}

type deleteUploadRequest struct {
	Name string `json:"name"`
}

// HandleUpload handles POST /api/admin/upload (multipart: file, folder).
//
// Size is enforced three times, cheapest first: the declared Content-Length,
// the per-part size the multipart parser reports, and a MaxBytesReader for
// bodies that lie about their length. None of them reach the object store.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	limit := h.service.MaxBytes() + multipartOverhead
	if r.ContentLength > limit {
		h.reject(w, http.StatusBadRequest, h.tooLarge())
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.reject(w, http.StatusBadRequest, h.tooLarge())
			return
		}
		h.reject(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.reject(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if err := h.service.Check(contentType, header.Size); err != nil {
		h.reject(w, http.StatusBadRequest, err.Error())
		return
	}

	obj, err := h.service.Upload(r.Context(), file, header.Size, contentType, header.Filename, r.FormValue("folder"))
	if err != nil {
		if errors.Is(err, apperror.ErrValidation) {
			h.reject(w, http.StatusBadRequest, err.Error())
			return
		}
		h.reject(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{Success: true, URL: obj.URL, Name: obj.Path})
}

// HandleDelete handles DELETE /api/admin/upload with body {"name": path}.
func (h *UploadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteUploadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.reject(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Delete(r.Context(), req.Name); err != nil {
		if errors.Is(err, apperror.ErrValidation) {
			h.reject(w, http.StatusBadRequest, err.Error())
			return
		}
		h.reject(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse{Success: true})
}

func (h *UploadHandler) reject(w http.ResponseWriter, status int, msg string) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("upload request failed", slog.String("error", msg))
	}
	writeJSON(w, status, uploadResponse{Error: msg})
}

func (h *UploadHandler) tooLarge() string {
	return fmt.Sprintf("file too large, maximum is %d MB", h.service.MaxBytes()>>20)
}
