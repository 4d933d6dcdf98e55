package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/felicityfest/felicity-backend/internal/domain"
)

// --- Fakes ---

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type memRepo struct {
	byID map[string]*domain.Event
}

func newMemRepo() *memRepo { return &memRepo{byID: map[string]*domain.Event{}} }

func (m *memRepo) Create(ctx context.Context, e *domain.Event) error {
	m.byID[e.ID] = e
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("event not found")
	}
	return e, nil
}

func (m *memRepo) Update(ctx context.Context, e *domain.Event) error {
	m.byID[e.ID] = e
	return nil
}

func (m *memRepo) ListPublished(ctx context.Context, page, pageSize int) ([]*domain.Event, int, error) {
	return []*domain.Event{}, 0, nil
}

func (m *memRepo) ListByOrganizer(ctx context.Context, organizerID string, page, pageSize int) ([]*domain.Event, int, error) {
	return []*domain.Event{}, 0, nil
}

type memRegs struct {
	count int
	regs  []*domain.Registration
}

func (m *memRegs) CountByEvent(ctx context.Context, eventID string) (int, error) {
	return m.count, nil
}

func (m *memRegs) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	return m.regs, nil
}

type capturePublisher struct {
	routes   []string
	payloads []any
	err      error
}

func (p *capturePublisher) PublishEvent(ctx context.Context, rk string, v any) error {
	p.routes = append(p.routes, rk)
	p.payloads = append(p.payloads, v)
	return p.err
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

func seedEvent(t *testing.T, repo *memRepo, now time.Time) *domain.Event {
	t.Helper()
	e, err := domain.NewDraft("org-1", "Hackathon", domain.TypeNormal, now)
	assert.NoError(t, err)
	e.Description = "24h hackathon"
	e.Category = "technical"
	e.RegistrationDeadline = timePtr(now.Add(24 * time.Hour))
	e.StartTime = timePtr(now.Add(48 * time.Hour))
	e.EndTime = timePtr(now.Add(72 * time.Hour))
	e.RegLimit = 50
	repo.byID[e.ID] = e
	return e
}

// --- Tests ---

func TestService_Create(t *testing.T) {
	now := mustTime(t, "2026-01-10T10:00:00Z")
	repo := newMemRepo()
	svc := New(repo, &memRegs{}, fakeClock{t: now}, NoopPublisher{}, nil, 0)

	t.Run("organizer_creates_draft", func(t *testing.T) {
		ev, err := svc.Create(context.Background(), CreateCmd{
			ActorID: "org-1", ActorRole: domain.RoleOrganizer,
			Name: "Felicity Quiz", Type: domain.TypeNormal,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusDraft, ev.Status)
	})

	t.Run("participant_forbidden", func(t *testing.T) {
		_, err := svc.Create(context.Background(), CreateCmd{
			ActorID: "p-1", ActorRole: domain.RoleParticipant, Name: "Nope",
		})
		assert.Equal(t, domain.CodeForbidden, err.(*domain.AppError).Code)
	})
}

func TestService_Publish(t *testing.T) {
	now := mustTime(t, "2026-01-10T10:00:00Z")
	repo := newMemRepo()
	pub := &capturePublisher{}
	svc := New(repo, &memRegs{}, fakeClock{t: now}, pub, nil, 0)
	ev := seedEvent(t, repo, now)

	t.Run("owner_publishes_and_announces", func(t *testing.T) {
		out, err := svc.Publish(context.Background(), ev.ID, "org-1", domain.RoleOrganizer)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusPublished, out.Status)
		assert.Equal(t, []string{RouteEventPublished}, pub.routes)

		env := pub.payloads[0].(AnnounceEnvelope[EventPublishedPayload])
		assert.Equal(t, "Hackathon", env.Payload.Name)
		assert.Equal(t, "both", env.Payload.Eligibility)
	})

	t.Run("non_owner_forbidden", func(t *testing.T) {
		ev2 := seedEvent(t, repo, now)
		_, err := svc.Publish(context.Background(), ev2.ID, "org-2", domain.RoleOrganizer)
		assert.Equal(t, domain.CodeForbidden, err.(*domain.AppError).Code)
	})

	t.Run("announce_failure_does_not_fail_publish", func(t *testing.T) {
		ev3 := seedEvent(t, repo, now)
		failing := &capturePublisher{err: assert.AnError}
		svc2 := New(repo, &memRegs{}, fakeClock{t: now}, failing, nil, 0)
		out, err := svc2.Publish(context.Background(), ev3.ID, "org-1", domain.RoleOrganizer)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusPublished, out.Status)
	})
}

func TestService_Update_PublishedLimits(t *testing.T) {
	now := mustTime(t, "2026-01-10T10:00:00Z")
	repo := newMemRepo()
	svc := New(repo, &memRegs{}, fakeClock{t: now}, NoopPublisher{}, nil, 0)
	ev := seedEvent(t, repo, now)
	_, err := svc.Publish(context.Background(), ev.ID, "org-1", domain.RoleOrganizer)
	assert.NoError(t, err)

	t.Run("reg_limit_decrease_rejected", func(t *testing.T) {
		down := 40
		_, err := svc.Update(context.Background(), UpdateCmd{
			ActorID: "org-1", ActorRole: domain.RoleOrganizer, EventID: ev.ID,
			Update: domain.EventUpdate{RegLimit: &down},
		})
		assert.Equal(t, domain.CodeValidation, err.(*domain.AppError).Code)
	})

	t.Run("reg_limit_increase_accepted", func(t *testing.T) {
		up := 60
		out, err := svc.Update(context.Background(), UpdateCmd{
			ActorID: "org-1", ActorRole: domain.RoleOrganizer, EventID: ev.ID,
			Update: domain.EventUpdate{RegLimit: &up},
		})
		assert.NoError(t, err)
		assert.Equal(t, 60, out.RegLimit)
	})
}

func TestService_Update_FormLock(t *testing.T) {
	now := mustTime(t, "2026-01-10T10:00:00Z")
	repo := newMemRepo()
	regs := &memRegs{count: 1}
	svc := New(repo, regs, fakeClock{t: now}, NoopPublisher{}, nil, 0)
	ev := seedEvent(t, repo, now)

	form := []domain.FormField{{Label: "College", Type: "text"}}
	for i := 0; i < 3; i++ {
		_, err := svc.Update(context.Background(), UpdateCmd{
			ActorID: "org-1", ActorRole: domain.RoleOrganizer, EventID: ev.ID,
			Update: domain.EventUpdate{CustomForm: &form},
		})
		assert.Equal(t, domain.CodeConflict, err.(*domain.AppError).Code)
	}
}

func TestService_Analytics(t *testing.T) {
	now := mustTime(t, "2026-01-10T10:00:00Z")
	repo := newMemRepo()
	ev := seedEvent(t, repo, now)
	ev.Fee = 100

	regs := &memRegs{regs: []*domain.Registration{
		{Type: domain.TypeNormal, Status: domain.RegStatusRegistered, Attended: true},
		{Type: domain.TypeNormal, Status: domain.RegStatusCancelled},
		{Type: domain.TypeMerchandise, Status: domain.RegStatusPurchased,
			Order: []domain.OrderLine{{ItemName: "Hoodie", VariantLabel: "M", Quantity: 2}}},
	}}
	svc := New(repo, regs, fakeClock{t: now}, NoopPublisher{}, nil, 0)

	out, err := svc.Analytics(context.Background(), ev.ID, "org-1", domain.RoleOrganizer)
	assert.NoError(t, err)
	assert.Equal(t, 1, out.RegistrationCount)
	assert.Equal(t, 1, out.PurchaseCount)
	assert.Equal(t, 100+200, out.Revenue)
	assert.Equal(t, 1, out.AttendanceCount)
}

func TestService_Transition(t *testing.T) {
	now := mustTime(t, "2026-01-10T10:00:00Z")
	repo := newMemRepo()
	svc := New(repo, &memRegs{}, fakeClock{t: now}, NoopPublisher{}, nil, 0)
	ev := seedEvent(t, repo, now)
	_, err := svc.Publish(context.Background(), ev.ID, "org-1", domain.RoleOrganizer)
	assert.NoError(t, err)

	out, err := svc.Transition(context.Background(), ev.ID, domain.StatusCompleted, "org-1", domain.RoleOrganizer)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, out.Status)

	_, err = svc.Transition(context.Background(), ev.ID, domain.StatusPublished, "org-1", domain.RoleOrganizer)
	assert.Equal(t, domain.CodeInvalidState, err.(*domain.AppError).Code)
}
