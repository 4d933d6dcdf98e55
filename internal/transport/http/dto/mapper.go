package dto

import (
	"time"

	"github.com/felicityfest/felicity-backend/internal/domain"
)

func ToEventResp(e *domain.Event, now time.Time) EventResp {
	form := make([]FormFieldResp, 0, len(e.CustomForm))
	for _, f := range e.CustomForm {
		form = append(form, FormFieldResp{
			Label: f.Label, Type: f.Type, Required: f.Required, Options: f.Options,
		})
	}
	catalog := make([]MerchItemResp, 0, len(e.Merchandise))
	for _, item := range e.Merchandise {
		variants := make([]MerchVariantResp, 0, len(item.Variants))
		for _, v := range item.Variants {
			variants = append(variants, MerchVariantResp{Label: v.Label, Stock: v.Stock})
		}
		catalog = append(catalog, MerchItemResp{
			Name: item.Name, PurchaseLimit: item.PurchaseLimit, Variants: variants,
		})
	}

	return EventResp{
		ID:          e.ID,
		OrganizerID: e.OrganizerID,
		Name:        e.Name,
		Description: e.Description,
		Category:    e.Category,

		Type:          string(e.Type),
		Status:        string(e.Status),
		DisplayStatus: string(e.DisplayStatus(now)),
		Eligibility:   string(e.Eligibility),

		RegistrationDeadline: e.RegistrationDeadline,
		StartTime:            e.StartTime,
		EndTime:              e.EndTime,

		RegLimit: e.RegLimit,
		Fee:      e.Fee,

		CustomForm:  form,
		Merchandise: catalog,

		PublishedAt: e.PublishedAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToEventUpdate(req UpdateEventReq) domain.EventUpdate {
	u := domain.EventUpdate{
		Name:                 req.Name,
		Description:          req.Description,
		Category:             req.Category,
		RegistrationDeadline: req.RegistrationDeadline,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		RegLimit:             req.RegLimit,
		Fee:                  req.Fee,
	}
	if req.Type != nil {
		typ := domain.EventType(*req.Type)
		u.Type = &typ
	}
	if req.Eligibility != nil {
		el := domain.Eligibility(*req.Eligibility)
		u.Eligibility = &el
	}
	if req.CustomForm != nil {
		form := make([]domain.FormField, 0, len(*req.CustomForm))
		for _, f := range *req.CustomForm {
			form = append(form, domain.FormField{
				Label: f.Label, Type: f.Type, Required: f.Required, Options: f.Options,
			})
		}
		u.CustomForm = &form
	}
	if req.Merchandise != nil {
		catalog := make([]domain.MerchItem, 0, len(*req.Merchandise))
		for _, item := range *req.Merchandise {
			variants := make([]domain.MerchVariant, 0, len(item.Variants))
			for _, v := range item.Variants {
				variants = append(variants, domain.MerchVariant{Label: v.Label, Stock: v.Stock})
			}
			catalog = append(catalog, domain.MerchItem{
				Name: item.Name, PurchaseLimit: item.PurchaseLimit, Variants: variants,
			})
		}
		u.Merchandise = &catalog
	}
	return u
}

func ToAdmissionResp(reg *domain.Registration, ticket *domain.Ticket) AdmissionResp {
	out := AdmissionResp{
		ID:            reg.ID,
		EventID:       reg.EventID,
		ParticipantID: reg.ParticipantID,
		Type:          string(reg.Type),
		Status:        string(reg.Status),
		FormData:      reg.FormData,
		CreatedAt:     reg.CreatedAt,
	}
	for _, line := range reg.Order {
		out.Order = append(out.Order, OrderLineResp{
			ItemName:     line.ItemName,
			VariantLabel: line.VariantLabel,
			Quantity:     line.Quantity,
		})
	}
	if ticket != nil {
		out.Ticket = &TicketResp{
			ID:        ticket.ID,
			Code:      ticket.Code,
			QRPayload: ticket.QRPayload,
			Status:    string(ticket.Status),
			CreatedAt: ticket.CreatedAt,
		}
	}
	return out
}

func ToAccessContextResp(acc *domain.AccessContext, now time.Time) AccessContextResp {
	return AccessContextResp{
		Event:          ToEventResp(acc.Event, now),
		CanModerate:    acc.CanModerate,
		CanAnnounce:    acc.CanAnnounce,
		CanParticipate: acc.CanParticipate,
	}
}
