package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/felicityfest/felicity-backend/internal/application/event"
	"github.com/felicityfest/felicity-backend/internal/domain"
	"github.com/felicityfest/felicity-backend/internal/transport/http/dto"
	"github.com/felicityfest/felicity-backend/internal/transport/http/middleware"
	"github.com/felicityfest/felicity-backend/internal/transport/http/response"
	"github.com/felicityfest/felicity-backend/internal/transport/http/validate"
)

type Clock interface{ Now() time.Time }

type EventsHandler struct {
	svc   *event.Service
	clock Clock
}

func NewEventsHandler(svc *event.Service, clock Clock) *EventsHandler {
	return &EventsHandler{svc: svc, clock: clock}
}

// Public
func (h *EventsHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	items, total, err := h.svc.ListPublished(r.Context(), page, pageSize)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	now := h.clock.Now().UTC()
	out := make([]dto.EventResp, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ToEventResp(it, now))
	}

	response.Data(w, http.StatusOK, dto.PageResp[dto.EventResp]{
		Items:    out,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	})
}

func (h *EventsHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "event_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"event_id": "must be uuid",
		}))
		return
	}
	ev, err := h.svc.Get(r.Context(), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(ev, h.clock.Now().UTC()))
}

// Organizer
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}
	actor := middleware.Actor(r)
	ev, err := h.svc.Create(r.Context(), event.CreateCmd{
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Name:      req.Name,
		Type:      domain.EventType(req.Type),
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToEventResp(ev, h.clock.Now().UTC()))
}

func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "event_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"event_id": "must be uuid",
		}))
		return
	}

	var req dto.UpdateEventReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}

	actor := middleware.Actor(r)
	ev, err := h.svc.Update(r.Context(), event.UpdateCmd{
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		EventID:   id,
		Update:    dto.ToEventUpdate(req),
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(ev, h.clock.Now().UTC()))
}

func (h *EventsHandler) Publish(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "event_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"event_id": "must be uuid",
		}))
		return
	}

	actor := middleware.Actor(r)
	ev, err := h.svc.Publish(r.Context(), id, actor.ID, actor.Role)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(ev, h.clock.Now().UTC()))
}

func (h *EventsHandler) Transition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "event_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"event_id": "must be uuid",
		}))
		return
	}

	var req dto.TransitionReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"status": "must be one of: ongoing, completed, closed",
		}))
		return
	}

	actor := middleware.Actor(r)
	ev, err := h.svc.Transition(r.Context(), id, domain.EventStatus(req.Status), actor.ID, actor.Role)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(ev, h.clock.Now().UTC()))
}

func (h *EventsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	actor := middleware.Actor(r)
	items, total, err := h.svc.ListMine(r.Context(), actor.ID, actor.Role, page, pageSize)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	now := h.clock.Now().UTC()
	out := make([]dto.EventResp, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ToEventResp(it, now))
	}
	response.Data(w, http.StatusOK, dto.PageResp[dto.EventResp]{
		Items: out, Page: page, PageSize: pageSize, Total: total,
	})
}

func (h *EventsHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "event_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"event_id": "must be uuid",
		}))
		return
	}

	actor := middleware.Actor(r)
	stats, err := h.svc.Analytics(r.Context(), id, actor.ID, actor.Role)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, stats)
}

func (h *EventsHandler) Participants(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "event_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"event_id": "must be uuid",
		}))
		return
	}

	actor := middleware.Actor(r)
	rows, err := h.svc.ParticipantRows(r.Context(), id, actor.ID, actor.Role)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, rows)
}
