package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/felicityfest/felicity-backend/internal/application/admission"
	"github.com/felicityfest/felicity-backend/internal/domain"
	"github.com/felicityfest/felicity-backend/internal/transport/http/dto"
	"github.com/felicityfest/felicity-backend/internal/transport/http/middleware"
	"github.com/felicityfest/felicity-backend/internal/transport/http/response"
	"github.com/felicityfest/felicity-backend/internal/transport/http/validate"
)

type AdmissionsHandler struct {
	svc *admission.Service
}

func NewAdmissionsHandler(svc *admission.Service) *AdmissionsHandler {
	return &AdmissionsHandler{svc: svc}
}

func (h *AdmissionsHandler) Register(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "event_id")
	if !validate.IsUUID(eventID) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"event_id": "must be uuid",
		}))
		return
	}

	var req dto.RegisterReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}

	adm, err := h.svc.Register(r.Context(), admission.RegisterCmd{
		EventID:  eventID,
		ActorID:  middleware.Actor(r).ID,
		FormData: req.FormData,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToAdmissionResp(adm.Registration, adm.Ticket))
}

func (h *AdmissionsHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "event_id")
	if !validate.IsUUID(eventID) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"event_id": "must be uuid",
		}))
		return
	}

	var req dto.PurchaseReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"lines": "at least one valid order line is required",
		}))
		return
	}

	lines := make([]domain.OrderLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, domain.OrderLine{
			ItemName:     l.ItemName,
			VariantLabel: l.VariantLabel,
			Quantity:     l.Quantity,
		})
	}

	adm, err := h.svc.Purchase(r.Context(), admission.PurchaseCmd{
		EventID: eventID,
		ActorID: middleware.Actor(r).ID,
		Lines:   lines,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToAdmissionResp(adm.Registration, adm.Ticket))
}

func (h *AdmissionsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	regs, err := h.svc.ListMine(r.Context(), middleware.Actor(r).ID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	out := make([]dto.AdmissionResp, 0, len(regs))
	for _, reg := range regs {
		out = append(out, dto.ToAdmissionResp(reg, nil))
	}
	response.Data(w, http.StatusOK, out)
}
