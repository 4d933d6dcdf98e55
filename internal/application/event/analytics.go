package event

import (
	"context"

	"github.com/felicityfest/felicity-backend/internal/domain"
)

type Analytics struct {
	EventID           string `json:"event_id"`
	RegistrationCount int    `json:"registration_count"`
	PurchaseCount     int    `json:"purchase_count"`
	Revenue           int    `json:"revenue"`
	AttendanceCount   int    `json:"attendance_count"`
	TeamCompleteCount int    `json:"team_complete_count"`
}

// ParticipantRow is a structured export row; CSV formatting happens outside
// this core.
type ParticipantRow struct {
	RegistrationID string                    `json:"registration_id"`
	ParticipantID  string                    `json:"participant_id"`
	TicketID       string                    `json:"ticket_id"`
	Status         domain.RegistrationStatus `json:"status"`
	Attended       bool                      `json:"attended"`
	TeamComplete   bool                      `json:"team_complete"`
	FormData       map[string]any            `json:"form_data,omitempty"`
	Order          []domain.OrderLine        `json:"order,omitempty"`
}

// Revenue multiplies the event-level fee by quantity for both admission
// types; merchandise has no per-item pricing.
func (s *Service) Analytics(ctx context.Context, eventID, actorID, actorRole string) (*Analytics, error) {
	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !canManage(actorID, actorRole, ev.OrganizerID) {
		return nil, domain.ErrForbidden("not allowed")
	}

	regs, err := s.regs.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	out := &Analytics{EventID: eventID}
	for _, r := range regs {
		if r.Status == domain.RegStatusCancelled {
			continue
		}
		switch r.Type {
		case domain.TypeNormal:
			out.RegistrationCount++
			out.Revenue += ev.Fee
		case domain.TypeMerchandise:
			out.PurchaseCount++
			for _, line := range r.Order {
				out.Revenue += ev.Fee * line.Quantity
			}
		}
		if r.Attended {
			out.AttendanceCount++
		}
		if r.TeamComplete {
			out.TeamCompleteCount++
		}
	}
	return out, nil
}

func (s *Service) ParticipantRows(ctx context.Context, eventID, actorID, actorRole string) ([]ParticipantRow, error) {
	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !canManage(actorID, actorRole, ev.OrganizerID) {
		return nil, domain.ErrForbidden("not allowed")
	}

	regs, err := s.regs.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	rows := make([]ParticipantRow, 0, len(regs))
	for _, r := range regs {
		rows = append(rows, ParticipantRow{
			RegistrationID: r.ID,
			ParticipantID:  r.ParticipantID,
			TicketID:       r.TicketID,
			Status:         r.Status,
			Attended:       r.Attended,
			TeamComplete:   r.TeamComplete,
			FormData:       r.FormData,
			Order:          r.Order,
		})
	}
	return rows, nil
}
