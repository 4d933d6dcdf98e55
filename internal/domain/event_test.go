package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	tt, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad time %q: %v", s, err)
	}
	return tt.UTC()
}

func timePtr(t time.Time) *time.Time { return &t }

func completeDraft(t *testing.T, now time.Time) *Event {
	t.Helper()
	e, err := NewDraft("org-1", "Hackathon", TypeNormal, now)
	assert.NoError(t, err)
	e.Description = "24h hackathon"
	e.Category = "technical"
	e.RegistrationDeadline = timePtr(now.Add(24 * time.Hour))
	e.StartTime = timePtr(now.Add(48 * time.Hour))
	e.EndTime = timePtr(now.Add(72 * time.Hour))
	e.RegLimit = 50
	return e
}

func TestNewDraft_Validation(t *testing.T) {
	now := mustTime(t, "2026-01-10T10:00:00Z")

	t.Run("valid_draft", func(t *testing.T) {
		e, err := NewDraft("org-1", "Felicity Quiz", TypeNormal, now)
		assert.NoError(t, err)
		assert.Equal(t, StatusDraft, e.Status)
		assert.Equal(t, EligibilityBoth, e.Eligibility)
		assert.NotEmpty(t, e.ID)
	})

	t.Run("fail_on_empty_organizer", func(t *testing.T) {
		_, err := NewDraft("", "Quiz", TypeNormal, now)
		assert.Error(t, err)
		assert.Equal(t, CodeValidation, err.(*AppError).Code)
	})

	t.Run("fail_on_bad_type", func(t *testing.T) {
		_, err := NewDraft("org-1", "Quiz", EventType("raffle"), now)
		assert.Error(t, err)
	})
}

func TestDisplayStatus(t *testing.T) {
	now := mustTime(t, "2026-01-10T10:00:00Z")
	e := completeDraft(t, now)
	assert.NoError(t, e.Publish(now))

	t.Run("published_before_start", func(t *testing.T) {
		assert.Equal(t, StatusPublished, e.DisplayStatus(e.StartTime.Add(-time.Hour)))
	})
	t.Run("ongoing_inside_window", func(t *testing.T) {
		assert.Equal(t, StatusOngoing, e.DisplayStatus(e.StartTime.Add(time.Hour)))
		assert.Equal(t, StatusOngoing, e.DisplayStatus(*e.StartTime))
		assert.Equal(t, StatusOngoing, e.DisplayStatus(*e.EndTime))
	})
	t.Run("closed_after_end", func(t *testing.T) {
		assert.Equal(t, StatusClosed, e.DisplayStatus(e.EndTime.Add(time.Minute)))
	})
	t.Run("terminal_statuses_are_sticky", func(t *testing.T) {
		for _, s := range []EventStatus{StatusDraft, StatusCompleted, StatusClosed} {
			x := completeDraft(t, now)
			x.Status = s
			assert.Equal(t, s, x.DisplayStatus(now))
			assert.Equal(t, s, x.DisplayStatus(now.Add(1000*time.Hour)))
		}
	})
}

func TestPublish(t *testing.T) {
	now := mustTime(t, "2026-01-10T10:00:00Z")

	t.Run("draft_with_required_fields", func(t *testing.T) {
		e := completeDraft(t, now)
		assert.NoError(t, e.Publish(now))
		assert.Equal(t, StatusPublished, e.Status)
		assert.NotNil(t, e.PublishedAt)
	})

	t.Run("incomplete_draft_rejected", func(t *testing.T) {
		e, _ := NewDraft("org-1", "Quiz", TypeNormal, now)
		err := e.Publish(now)
		assert.Error(t, err)
		assert.Equal(t, CodeValidation, err.(*AppError).Code)
	})

	t.Run("non_draft_rejected", func(t *testing.T) {
		e := completeDraft(t, now)
		assert.NoError(t, e.Publish(now))
		err := e.Publish(now)
		assert.Equal(t, CodeInvalidState, err.(*AppError).Code)
	})
}

func TestApplyUpdate_Draft(t *testing.T) {
	now := mustTime(t, "2026-01-10T10:00:00Z")
	e := completeDraft(t, now)

	t.Run("anything_goes", func(t *testing.T) {
		name := "Renamed"
		typ := TypeMerchandise
		err := e.ApplyUpdate(EventUpdate{Name: &name, Type: &typ}, 0, now)
		assert.NoError(t, err)
		assert.Equal(t, "Renamed", e.Name)
		assert.Equal(t, TypeMerchandise, e.Type)
	})

	t.Run("form_locked_once_registered", func(t *testing.T) {
		form := []FormField{{Label: "College", Type: "text"}}
		err := e.ApplyUpdate(EventUpdate{CustomForm: &form}, 1, now)
		assert.Error(t, err)
		assert.Equal(t, CodeConflict, err.(*AppError).Code)

		// and again: the lock never releases
		err = e.ApplyUpdate(EventUpdate{CustomForm: &form}, 3, now)
		assert.Equal(t, CodeConflict, err.(*AppError).Code)
	})

	t.Run("type_locked_once_registered", func(t *testing.T) {
		typ := TypeNormal
		err := e.ApplyUpdate(EventUpdate{Type: &typ}, 2, now)
		assert.Equal(t, CodeConflict, err.(*AppError).Code)
	})
}

func TestApplyUpdate_Published(t *testing.T) {
	now := mustTime(t, "2026-01-10T10:00:00Z")

	newPublished := func() *Event {
		e := completeDraft(t, now)
		assert.NoError(t, e.Publish(now))
		return e
	}

	t.Run("reg_limit_increase_only", func(t *testing.T) {
		e := newPublished()
		down := 40
		err := e.ApplyUpdate(EventUpdate{RegLimit: &down}, 0, now)
		assert.Error(t, err)
		assert.Equal(t, CodeValidation, err.(*AppError).Code)
		assert.Equal(t, 50, e.RegLimit)

		up := 60
		assert.NoError(t, e.ApplyUpdate(EventUpdate{RegLimit: &up}, 0, now))
		assert.Equal(t, 60, e.RegLimit)
	})

	t.Run("deadline_extend_only", func(t *testing.T) {
		e := newPublished()
		earlier := e.RegistrationDeadline.Add(-time.Hour)
		err := e.ApplyUpdate(EventUpdate{RegistrationDeadline: &earlier}, 0, now)
		assert.Equal(t, CodeValidation, err.(*AppError).Code)

		later := e.RegistrationDeadline.Add(time.Hour)
		assert.NoError(t, e.ApplyUpdate(EventUpdate{RegistrationDeadline: &later}, 0, now))
	})

	t.Run("other_fields_rejected", func(t *testing.T) {
		e := newPublished()
		name := "New Name"
		err := e.ApplyUpdate(EventUpdate{Name: &name}, 0, now)
		assert.Equal(t, CodeInvalidState, err.(*AppError).Code)
	})

	t.Run("ongoing_blocks_everything", func(t *testing.T) {
		e := newPublished()
		desc := "late edit"
		during := e.StartTime.Add(time.Minute)
		err := e.ApplyUpdate(EventUpdate{Description: &desc}, 0, during)
		assert.Equal(t, CodeInvalidState, err.(*AppError).Code)
	})

	t.Run("description_allowed", func(t *testing.T) {
		e := newPublished()
		desc := "updated description"
		assert.NoError(t, e.ApplyUpdate(EventUpdate{Description: &desc}, 0, now))
		assert.Equal(t, "updated description", e.Description)
	})
}

func TestTransition(t *testing.T) {
	now := mustTime(t, "2026-01-10T10:00:00Z")

	t.Run("forward_only", func(t *testing.T) {
		e := completeDraft(t, now)
		assert.NoError(t, e.Publish(now))
		assert.NoError(t, e.Transition(StatusOngoing, now))
		assert.NoError(t, e.Transition(StatusCompleted, now))
		assert.NoError(t, e.Transition(StatusClosed, now))
	})

	t.Run("skipping_forward_allowed", func(t *testing.T) {
		e := completeDraft(t, now)
		assert.NoError(t, e.Publish(now))
		assert.NoError(t, e.Transition(StatusClosed, now))
	})

	t.Run("backward_rejected", func(t *testing.T) {
		e := completeDraft(t, now)
		assert.NoError(t, e.Publish(now))
		assert.NoError(t, e.Transition(StatusCompleted, now))
		err := e.Transition(StatusPublished, now)
		assert.Equal(t, CodeInvalidState, err.(*AppError).Code)
	})

	t.Run("draft_cannot_transition", func(t *testing.T) {
		e := completeDraft(t, now)
		err := e.Transition(StatusPublished, now)
		assert.Equal(t, CodeInvalidState, err.(*AppError).Code)
	})
}
