package admission

import (
	"context"

	"github.com/felicityfest/felicity-backend/internal/domain"
)

type PurchaseCmd struct {
	EventID string
	ActorID string
	Lines   []domain.OrderLine
}

// Purchase admits a merchandise order. Every line is validated against the
// catalog before any stock moves; a failing line rejects the whole order
// with no partial application.
func (s *Service) Purchase(ctx context.Context, cmd PurchaseCmd) (*Admission, error) {
	if len(cmd.Lines) == 0 {
		return nil, domain.ErrValidation("order must contain at least one line")
	}

	p, err := s.profiles.ParticipantByUser(ctx, cmd.ActorID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.acquire(cmd.EventID)
	defer unlock()

	ev, err := s.events.GetByID(ctx, cmd.EventID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	if err := checkGates(ev, domain.TypeMerchandise, p, now); err != nil {
		return nil, err
	}

	if err := validateOrder(ev, cmd.Lines); err != nil {
		return nil, err
	}

	// All lines validated: apply the decrements and persist the event before
	// creating the admission. The lock is still held, so the sum of
	// committed quantities can never exceed the variant's stock.
	for _, line := range cmd.Lines {
		v := ev.FindItem(line.ItemName).FindVariant(line.VariantLabel)
		v.Stock -= line.Quantity
	}
	ev.UpdatedAt = now.UTC()
	if err := s.events.Update(ctx, ev); err != nil {
		return nil, err
	}

	ticket := domain.NewTicket(ev.ID, p.UserID, now)
	reg := domain.NewPurchase(ev.ID, p.UserID, cmd.Lines, ticket, now)
	if err := s.regs.CreateAdmission(ctx, reg, ticket); err != nil {
		return nil, err
	}

	s.invalidateDetails(ctx, ev.ID)
	return &Admission{Registration: reg, Ticket: ticket}, nil
}

func validateOrder(ev *domain.Event, lines []domain.OrderLine) error {
	perItem := map[string]int{}
	perVariant := map[[2]string]int{}

	for _, line := range lines {
		if line.Quantity <= 0 {
			return domain.ErrValidationMeta("invalid quantity", map[string]string{
				"item": line.ItemName, "variant": line.VariantLabel,
			})
		}
		item := ev.FindItem(line.ItemName)
		if item == nil {
			return domain.ErrNotFoundMeta("item not found", map[string]string{"item": line.ItemName})
		}
		if item.FindVariant(line.VariantLabel) == nil {
			return domain.ErrNotFoundMeta("variant not found", map[string]string{
				"item": line.ItemName, "variant": line.VariantLabel,
			})
		}
		perItem[line.ItemName] += line.Quantity
		perVariant[[2]string{line.ItemName, line.VariantLabel}] += line.Quantity
	}

	for name, qty := range perItem {
		item := ev.FindItem(name)
		if item.PurchaseLimit > 0 && qty > item.PurchaseLimit {
			return domain.ErrConflict("purchase limit exceeded for " + name)
		}
	}
	for key, qty := range perVariant {
		v := ev.FindItem(key[0]).FindVariant(key[1])
		if qty > v.Stock {
			return domain.ErrConflict("out of stock: " + key[0] + " " + key[1])
		}
	}
	return nil
}
