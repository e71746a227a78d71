package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/couple-gallery/internal/model"
	"github.com/sakif/couple-gallery/internal/service"
)

type TimelineHandler struct {
	service *service.TimelineService
	logger  *slog.Logger
}

func NewTimelineHandler(svc *service.TimelineService, logger *slog.Logger) *TimelineHandler {
	return &TimelineHandler{service: svc, logger: logger}
}

// createTimelineRequest accepts photo_id as a number, null, or absent.
type createTimelineRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Date        string           `json:"date"`
	Icon        string           `json:"icon"`
	PhotoID     model.OptionalID `json:"photo_id"`
}

func (h *TimelineHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *TimelineHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	event, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *TimelineHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createTimelineRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := h.service.Create(r.Context(), &model.TimelineEvent{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Icon:        req.Icon,
		PhotoID:     req.PhotoID.ID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id, Message: "timeline event created"})
}

func (h *TimelineHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var patch model.TimelinePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.service.Update(r.Context(), id, patch); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "timeline event updated"})
}

func (h *TimelineHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "timeline event deleted"})
}
