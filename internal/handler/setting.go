package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/couple-gallery/internal/service"
)

// SettingHandler serves the key/value site settings.
type SettingHandler struct {
	service *service.SettingService
	logger  *slog.Logger
}

func NewSettingHandler(svc *service.SettingService, logger *slog.Logger) *SettingHandler {
	return &SettingHandler{service: svc, logger: logger}
}

// putSettingRequest keeps value raw: it may be any JSON type.
type putSettingRequest struct {
	Value json.RawMessage `json:"value"`
}

type putSettingResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HandleList handles GET /api/settings: an object of key → decoded value.
func (h *SettingHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	all, err := h.service.All(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

// HandleGet handles GET /api/settings/{key}.
func (h *SettingHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	value, err := h.service.Get(r.Context(), r.PathValue("key"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, value)
}

// HandlePut handles PUT /api/admin/settings/{key} with body {"value": ...}.
func (h *SettingHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	var req putSettingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.service.Put(r.Context(), key, req.Value); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, putSettingResponse{Success: true, Message: "setting saved"})
}
