package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/felicityfest/felicity-backend/internal/application/forum"
	"github.com/felicityfest/felicity-backend/internal/domain"
	"github.com/felicityfest/felicity-backend/internal/transport/http/dto"
	"github.com/felicityfest/felicity-backend/internal/transport/http/middleware"
	"github.com/felicityfest/felicity-backend/internal/transport/http/response"
	"github.com/felicityfest/felicity-backend/internal/transport/http/validate"
)

type ForumHandler struct {
	svc   *forum.Service
	clock Clock
}

func NewForumHandler(svc *forum.Service, clock Clock) *ForumHandler {
	return &ForumHandler{svc: svc, clock: clock}
}

func eventIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "event_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"event_id": "must be uuid",
		}))
		return "", false
	}
	return id, true
}

func messageIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "message_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"message_id": "must be uuid",
		}))
		return "", false
	}
	return id, true
}

func (h *ForumHandler) Access(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	acc, err := h.svc.AccessContext(r.Context(), middleware.Actor(r), eventID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToAccessContextResp(acc, h.clock.Now().UTC()))
}

func (h *ForumHandler) List(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	views, err := h.svc.List(r.Context(), middleware.Actor(r), eventID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, views)
}

func (h *ForumHandler) Post(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}

	var req dto.PostMessageReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"content": "required, at most 2000 characters",
		}))
		return
	}

	view, err := h.svc.Post(r.Context(), forum.PostCmd{
		EventID:         eventID,
		Actor:           middleware.Actor(r),
		Content:         req.Content,
		ParentMessageID: req.ParentMessageID,
		IsAnnouncement:  req.IsAnnouncement,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, view)
}

func (h *ForumHandler) Pin(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	messageID, ok := messageIDParam(w, r)
	if !ok {
		return
	}
	view, err := h.svc.Pin(r.Context(), middleware.Actor(r), eventID, messageID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, view)
}

func (h *ForumHandler) Delete(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	messageID, ok := messageIDParam(w, r)
	if !ok {
		return
	}
	view, err := h.svc.Delete(r.Context(), middleware.Actor(r), eventID, messageID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, view)
}

func (h *ForumHandler) React(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	messageID, ok := messageIDParam(w, r)
	if !ok {
		return
	}

	var req dto.ReactReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"emoji": "required",
		}))
		return
	}

	view, err := h.svc.React(r.Context(), middleware.Actor(r), eventID, messageID, req.Emoji)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, view)
}
