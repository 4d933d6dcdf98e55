package admission

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felicityfest/felicity-backend/internal/domain"
)

// --- Fakes ---

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type memEvents struct {
	mu   sync.Mutex
	byID map[string]*domain.Event
}

func newMemEvents() *memEvents { return &memEvents{byID: map[string]*domain.Event{}} }

func (m *memEvents) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("event not found")
	}
	return e, nil
}

func (m *memEvents) Update(ctx context.Context, e *domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[e.ID] = e
	return nil
}

type memRegs struct {
	mu      sync.Mutex
	regs    []*domain.Registration
	tickets []*domain.Ticket
}

func (m *memRegs) CountByEvent(ctx context.Context, eventID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.regs {
		if r.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (m *memRegs) HasActiveNormal(ctx context.Context, eventID, participantID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.regs {
		if r.EventID == eventID && r.ParticipantID == participantID &&
			r.Type == domain.TypeNormal && r.Status != domain.RegStatusCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRegs) CreateAdmission(ctx context.Context, reg *domain.Registration, ticket *domain.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regs = append(m.regs, reg)
	m.tickets = append(m.tickets, ticket)
	return nil
}

func (m *memRegs) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	return m.regs, nil
}

func (m *memRegs) ListByParticipant(ctx context.Context, participantID string) ([]*domain.Registration, error) {
	var out []*domain.Registration
	for _, r := range m.regs {
		if r.ParticipantID == participantID {
			out = append(out, r)
		}
	}
	return out, nil
}

type memProfiles struct {
	byUser map[string]*domain.Participant
}

func (m *memProfiles) ParticipantByUser(ctx context.Context, userID string) (*domain.Participant, error) {
	p, ok := m.byUser[userID]
	if !ok {
		return nil, domain.ErrNotFound("participant not found")
	}
	return p, nil
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	tt, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad time %q: %v", s, err)
	}
	return tt.UTC()
}

func timePtr(t time.Time) *time.Time { return &t }

func seedNormalEvent(t *testing.T, events *memEvents, now time.Time, regLimit int) *domain.Event {
	t.Helper()
	e, err := domain.NewDraft("org-1", "Hackathon", domain.TypeNormal, now)
	require.NoError(t, err)
	e.Description = "d"
	e.Category = "technical"
	e.Eligibility = domain.EligibilityBoth
	e.RegistrationDeadline = timePtr(now.Add(24 * time.Hour))
	e.StartTime = timePtr(now.Add(48 * time.Hour))
	e.EndTime = timePtr(now.Add(72 * time.Hour))
	e.RegLimit = regLimit
	require.NoError(t, e.Publish(now))
	events.byID[e.ID] = e
	return e
}

func seedMerchEvent(t *testing.T, events *memEvents, now time.Time, stock, purchaseLimit int) *domain.Event {
	t.Helper()
	e, err := domain.NewDraft("org-1", "Merch Stall", domain.TypeMerchandise, now)
	require.NoError(t, err)
	e.Description = "d"
	e.Category = "merch"
	e.RegistrationDeadline = timePtr(now.Add(24 * time.Hour))
	e.StartTime = timePtr(now.Add(48 * time.Hour))
	e.EndTime = timePtr(now.Add(72 * time.Hour))
	e.Merchandise = []domain.MerchItem{{
		Name:          "Hoodie",
		PurchaseLimit: purchaseLimit,
		Variants:      []domain.MerchVariant{{Label: "M", Stock: stock}},
	}}
	require.NoError(t, e.Publish(now))
	events.byID[e.ID] = e
	return e
}

func newService(events *memEvents, regs *memRegs, profiles *memProfiles, now time.Time) *Service {
	return New(events, regs, profiles, nil, fakeClock{t: now})
}

func participants(ids ...string) *memProfiles {
	m := &memProfiles{byUser: map[string]*domain.Participant{}}
	for _, id := range ids {
		m.byUser[id] = &domain.Participant{UserID: id, FullName: "P " + id, Type: domain.ParticipantInternal}
	}
	return m
}

// --- Tests ---

func TestRegister_CapacityOfOne(t *testing.T) {
	now := mustTime(t, "2026-01-10T10:00:00Z")
	events := newMemEvents()
	regs := &memRegs{}
	svc := newService(events, regs, participants("p1", "p2"), now)
	ev := seedNormalEvent(t, events, now, 1)

	adm, err := svc.Register(context.Background(), RegisterCmd{EventID: ev.ID, ActorID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, domain.RegStatusRegistered, adm.Registration.Status)
	assert.NotEmpty(t, adm.Ticket.Code)
	assert.Equal(t, adm.Ticket.ID, adm.Registration.TicketID)

	_, err = svc.Register(context.Background(), RegisterCmd{EventID: ev.ID, ActorID: "p2"})
	require.Error(t, err)
	assert.Equal(t, domain.CodeConflict, err.(*domain.AppError).Code)
	assert.Contains(t, err.Error(), "limit reached")
}

func TestRegister_DuplicateRejected(t *testing.T) {
	now := mustTime(t, "2026-01-10T10:00:00Z")
	events := newMemEvents()
	regs := &memRegs{}
	svc := newService(events, regs, participants("p1"), now)
	ev := seedNormalEvent(t, events, now, 10)

	_, err := svc.Register(context.Background(), RegisterCmd{EventID: ev.ID, ActorID: "p1"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterCmd{EventID: ev.ID, ActorID: "p1"})
	assert.Equal(t, domain.CodeConflict, err.(*domain.AppError).Code)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegister_Gates(t *testing.T) {
	now := mustTime(t, "2026-01-10T10:00:00Z")

	t.Run("deadline_passed", func(t *testing.T) {
		events := newMemEvents()
		svc := newService(events, &memRegs{}, participants("p1"), now.Add(48*time.Hour))
		ev := seedNormalEvent(t, events, now, 10)
		_, err := svc.Register(context.Background(), RegisterCmd{EventID: ev.ID, ActorID: "p1"})
		assert.Equal(t, domain.CodeConflict, err.(*domain.AppError).Code)
	})

	t.Run("draft_not_open", func(t *testing.T) {
		events := newMemEvents()
		svc := newService(events, &memRegs{}, participants("p1"), now)
		ev := seedNormalEvent(t, events, now, 10)
		ev.Status = domain.StatusDraft
		_, err := svc.Register(context.Background(), RegisterCmd{EventID: ev.ID, ActorID: "p1"})
		assert.Equal(t, domain.CodeConflict, err.(*domain.AppError).Code)
	})

	t.Run("eligibility_mismatch", func(t *testing.T) {
		events := newMemEvents()
		profiles := participants("p1")
		profiles.byUser["p1"].Type = domain.ParticipantExternal
		svc := newService(events, &memRegs{}, profiles, now)
		ev := seedNormalEvent(t, events, now, 10)
		ev.Eligibility = domain.EligibilityInternal
		_, err := svc.Register(context.Background(), RegisterCmd{EventID: ev.ID, ActorID: "p1"})
		assert.Equal(t, domain.CodeForbidden, err.(*domain.AppError).Code)
	})

	t.Run("wrong_type", func(t *testing.T) {
		events := newMemEvents()
		svc := newService(events, &memRegs{}, participants("p1"), now)
		ev := seedMerchEvent(t, events, now, 5, 2)
		_, err := svc.Register(context.Background(), RegisterCmd{EventID: ev.ID, ActorID: "p1"})
		assert.Equal(t, domain.CodeValidation, err.(*domain.AppError).Code)
	})

	t.Run("unknown_participant", func(t *testing.T) {
		events := newMemEvents()
		svc := newService(events, &memRegs{}, participants(), now)
		ev := seedNormalEvent(t, events, now, 10)
		_, err := svc.Register(context.Background(), RegisterCmd{EventID: ev.ID, ActorID: "ghost"})
		assert.Equal(t, domain.CodeNotFound, err.(*domain.AppError).Code)
	})
}

func TestPurchase_StockFlow(t *testing.T) {
	now := mustTime(t, "2026-01-10T10:00:00Z")
	events := newMemEvents()
	regs := &memRegs{}
	svc := newService(events, regs, participants("p1", "p2", "p3"), now)
	ev := seedMerchEvent(t, events, now, 2, 2)

	t.Run("over_limit_rejected_stock_unchanged", func(t *testing.T) {
		_, err := svc.Purchase(context.Background(), PurchaseCmd{
			EventID: ev.ID, ActorID: "p1",
			Lines: []domain.OrderLine{{ItemName: "Hoodie", VariantLabel: "M", Quantity: 3}},
		})
		require.Error(t, err)
		assert.Equal(t, domain.CodeConflict, err.(*domain.AppError).Code)
		assert.Equal(t, 2, ev.FindItem("Hoodie").FindVariant("M").Stock)
	})

	t.Run("exact_stock_succeeds", func(t *testing.T) {
		adm, err := svc.Purchase(context.Background(), PurchaseCmd{
			EventID: ev.ID, ActorID: "p2",
			Lines: []domain.OrderLine{{ItemName: "Hoodie", VariantLabel: "M", Quantity: 2}},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RegStatusPurchased, adm.Registration.Status)
		assert.Equal(t, 0, ev.FindItem("Hoodie").FindVariant("M").Stock)
	})

	t.Run("out_of_stock_rejected", func(t *testing.T) {
		_, err := svc.Purchase(context.Background(), PurchaseCmd{
			EventID: ev.ID, ActorID: "p3",
			Lines: []domain.OrderLine{{ItemName: "Hoodie", VariantLabel: "M", Quantity: 1}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "out of stock")
	})
}

func TestPurchase_AllOrNothing(t *testing.T) {
	now := mustTime(t, "2026-01-10T10:00:00Z")
	events := newMemEvents()
	svc := newService(events, &memRegs{}, participants("p1"), now)
	ev := seedMerchEvent(t, events, now, 5, 5)
	ev.Merchandise = append(ev.Merchandise, domain.MerchItem{
		Name: "Cap", PurchaseLimit: 1,
		Variants: []domain.MerchVariant{{Label: "One Size", Stock: 10}},
	})

	_, err := svc.Purchase(context.Background(), PurchaseCmd{
		EventID: ev.ID, ActorID: "p1",
		Lines: []domain.OrderLine{
			{ItemName: "Hoodie", VariantLabel: "M", Quantity: 2},
			{ItemName: "Cap", VariantLabel: "One Size", Quantity: 2}, // over per-person limit
		},
	})
	require.Error(t, err)
	// first line must not have been applied
	assert.Equal(t, 5, ev.FindItem("Hoodie").FindVariant("M").Stock)
	assert.Equal(t, 10, ev.FindItem("Cap").FindVariant("One Size").Stock)
}

func TestPurchase_UnknownItemOrVariant(t *testing.T) {
	now := mustTime(t, "2026-01-10T10:00:00Z")
	events := newMemEvents()
	svc := newService(events, &memRegs{}, participants("p1"), now)
	ev := seedMerchEvent(t, events, now, 5, 5)

	_, err := svc.Purchase(context.Background(), PurchaseCmd{
		EventID: ev.ID, ActorID: "p1",
		Lines: []domain.OrderLine{{ItemName: "Mug", VariantLabel: "M", Quantity: 1}},
	})
	assert.Equal(t, domain.CodeNotFound, err.(*domain.AppError).Code)

	_, err = svc.Purchase(context.Background(), PurchaseCmd{
		EventID: ev.ID, ActorID: "p1",
		Lines: []domain.OrderLine{{ItemName: "Hoodie", VariantLabel: "XXL", Quantity: 1}},
	})
	assert.Equal(t, domain.CodeNotFound, err.(*domain.AppError).Code)
}

// Concurrent purchases against one variant must never oversell: committed
// quantities sum to at most the initial stock.
func TestPurchase_ConcurrentOversell(t *testing.T) {
	now := mustTime(t, "2026-01-10T10:00:00Z")
	events := newMemEvents()
	regs := &memRegs{}

	const initialStock = 10
	ids := make([]string, 40)
	for i := range ids {
		ids[i] = "p" + string(rune('A'+i%26)) + string(rune('0'+i/26))
	}
	svc := newService(events, regs, participants(ids...), now)
	ev := seedMerchEvent(t, events, now, initialStock, initialStock)

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(actor string) {
			defer wg.Done()
			_, _ = svc.Purchase(context.Background(), PurchaseCmd{
				EventID: ev.ID, ActorID: actor,
				Lines: []domain.OrderLine{{ItemName: "Hoodie", VariantLabel: "M", Quantity: 1}},
			})
		}(id)
	}
	wg.Wait()

	committed := 0
	for _, r := range regs.regs {
		for _, line := range r.Order {
			committed += line.Quantity
		}
	}
	assert.LessOrEqual(t, committed, initialStock)
	assert.Equal(t, initialStock-committed, ev.FindItem("Hoodie").FindVariant("M").Stock)
	assert.Equal(t, initialStock, committed, "exactly the stock should have been sold")
}
