package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/couple-gallery/internal/model"
	"github.com/sakif/couple-gallery/internal/service"
)

type MessageHandler struct {
	service *service.MessageService
	logger  *slog.Logger
}

func NewMessageHandler(svc *service.MessageService, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{service: svc, logger: logger}
}

type createMessageRequest struct {
	Content       string `json:"content"`
	EffectiveDate string `json:"effective_date"`
}

// fallbackResponse is what /latest returns when nothing is effective yet.
// It has only content, so the frontend renders it like any other note.
type fallbackResponse struct {
	Content string `json:"content"`
}

func (h *MessageHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

// HandleLatest handles GET /api/messages/latest. It is always 200 unless
// the database fails.
func (h *MessageHandler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	msg, ok, err := h.service.Latest(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, fallbackResponse{Content: model.FallbackMessage})
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (h *MessageHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := h.service.Create(r.Context(), &model.Message{
		Content:       req.Content,
		EffectiveDate: req.EffectiveDate,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id, Message: "message created"})
}

func (h *MessageHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var patch model.MessagePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.service.Update(r.Context(), id, patch); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "message updated"})
}

func (h *MessageHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "message deleted"})
}
