package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type FormField struct {
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

type MerchVariant struct {
	Label string `json:"label"`
	Stock int    `json:"stock"`
}

type MerchItem struct {
	Name          string         `json:"name"`
	PurchaseLimit int            `json:"purchase_limit"`
	Variants      []MerchVariant `json:"variants"`
}

type Event struct {
	ID          string
	OrganizerID string

	Name        string
	Description string
	Category    string

	Type        EventType
	Status      EventStatus
	Eligibility Eligibility

	RegistrationDeadline *time.Time
	StartTime            *time.Time
	EndTime              *time.Time

	// RegLimit caps registrations for normal events. 0 = unlimited.
	RegLimit int
	Fee      int

	CustomForm  []FormField
	Merchandise []MerchItem

	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewDraft(organizerID, name string, typ EventType, now time.Time) (*Event, error) {
	organizerID = strings.TrimSpace(organizerID)
	name = strings.TrimSpace(name)

	if organizerID == "" {
		return nil, ErrValidation("organizer_id is required")
	}
	if name == "" || len(name) > 200 {
		return nil, ErrValidation("name is required and must be <= 200 chars")
	}
	if typ == "" {
		typ = TypeNormal
	}
	if !typ.Valid() {
		return nil, ErrValidation("type must be normal or merchandise")
	}

	return &Event{
		ID:          uuid.NewString(),
		OrganizerID: organizerID,
		Name:        name,
		Type:        typ,
		Status:      StatusDraft,
		Eligibility: EligibilityBoth,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}, nil
}

// DisplayStatus derives the presented status from the stored status plus the
// schedule. Never persisted: recomputed on every read so it cannot go stale.
func (e *Event) DisplayStatus(now time.Time) EventStatus {
	switch e.Status {
	case StatusDraft, StatusCompleted, StatusClosed:
		return e.Status
	}
	if e.StartTime != nil && e.EndTime != nil &&
		!now.Before(*e.StartTime) && !now.After(*e.EndTime) {
		return StatusOngoing
	}
	if e.EndTime != nil && now.After(*e.EndTime) {
		return StatusClosed
	}
	return e.Status
}

// EventUpdate is a partial update; nil fields are untouched.
type EventUpdate struct {
	Name        *string
	Description *string
	Category    *string
	Type        *EventType
	Eligibility *Eligibility

	RegistrationDeadline *time.Time
	StartTime            *time.Time
	EndTime              *time.Time

	RegLimit *int
	Fee      *int

	CustomForm  *[]FormField
	Merchandise *[]MerchItem
}

// ApplyUpdate enforces the per-status editability contract. regCount is the
// live registration count for this event (any status).
func (e *Event) ApplyUpdate(u EventUpdate, regCount int, now time.Time) error {
	// Form lock is absolute: independent of status once anyone has registered.
	if u.CustomForm != nil && regCount > 0 {
		return ErrConflict("registration form is locked: registrations exist")
	}
	if u.Type != nil && *u.Type != e.Type && regCount > 0 {
		return ErrConflict("event type cannot change: registrations exist")
	}

	switch {
	case e.Status == StatusDraft:
		return e.applyDraftUpdate(u, now)
	case e.Status == StatusPublished && e.DisplayStatus(now) != StatusOngoing:
		return e.applyPublishedUpdate(u, now)
	default:
		return ErrInvalidState("event not editable in current status")
	}
}

func (e *Event) applyDraftUpdate(u EventUpdate, now time.Time) error {
	if u.Name != nil {
		v := strings.TrimSpace(*u.Name)
		if v == "" || len(v) > 200 {
			return ErrValidation("name must be non-empty and <= 200 chars")
		}
		e.Name = v
	}
	if u.Description != nil {
		e.Description = strings.TrimSpace(*u.Description)
	}
	if u.Category != nil {
		e.Category = strings.TrimSpace(*u.Category)
	}
	if u.Type != nil {
		if !u.Type.Valid() {
			return ErrValidation("type must be normal or merchandise")
		}
		e.Type = *u.Type
	}
	if u.Eligibility != nil {
		if !u.Eligibility.Valid() {
			return ErrValidation("eligibility must be internal, external or both")
		}
		e.Eligibility = *u.Eligibility
	}
	if u.RegistrationDeadline != nil {
		t := u.RegistrationDeadline.UTC()
		e.RegistrationDeadline = &t
	}
	if u.StartTime != nil {
		t := u.StartTime.UTC()
		e.StartTime = &t
	}
	if u.EndTime != nil {
		t := u.EndTime.UTC()
		e.EndTime = &t
	}
	if e.StartTime != nil && e.EndTime != nil && !e.EndTime.After(*e.StartTime) {
		return ErrValidation("end_time must be after start_time")
	}
	if u.RegLimit != nil {
		if *u.RegLimit < 0 {
			return ErrValidation("reg_limit must be >= 0 (0 means unlimited)")
		}
		e.RegLimit = *u.RegLimit
	}
	if u.Fee != nil {
		if *u.Fee < 0 {
			return ErrValidation("fee must be >= 0")
		}
		e.Fee = *u.Fee
	}
	if u.CustomForm != nil {
		if err := validateForm(*u.CustomForm); err != nil {
			return err
		}
		e.CustomForm = *u.CustomForm
	}
	if u.Merchandise != nil {
		if err := validateCatalog(*u.Merchandise); err != nil {
			return err
		}
		e.Merchandise = *u.Merchandise
	}
	e.UpdatedAt = now.UTC()
	return nil
}

// Published (and not yet ongoing): the form is locked down to description,
// deadline extension and limit increase.
func (e *Event) applyPublishedUpdate(u EventUpdate, now time.Time) error {
	if u.Name != nil || u.Category != nil || u.Type != nil || u.Eligibility != nil ||
		u.StartTime != nil || u.EndTime != nil || u.Fee != nil ||
		u.CustomForm != nil || u.Merchandise != nil {
		return ErrInvalidState("only description, registration_deadline and reg_limit can change after publish")
	}
	if u.Description != nil {
		e.Description = strings.TrimSpace(*u.Description)
	}
	if u.RegistrationDeadline != nil {
		if e.RegistrationDeadline != nil && u.RegistrationDeadline.Before(*e.RegistrationDeadline) {
			return ErrValidation("registration_deadline can only be extended")
		}
		t := u.RegistrationDeadline.UTC()
		e.RegistrationDeadline = &t
	}
	if u.RegLimit != nil {
		if *u.RegLimit < e.RegLimit {
			return ErrValidation("reg_limit can only be increased")
		}
		e.RegLimit = *u.RegLimit
	}
	e.UpdatedAt = now.UTC()
	return nil
}

// Publish moves draft -> published. Required fields must be populated by now:
// drafts may be incomplete, everything else may not.
func (e *Event) Publish(now time.Time) error {
	if e.Status != StatusDraft {
		return ErrInvalidState("only draft can be published")
	}
	missing := map[string]string{}
	if strings.TrimSpace(e.Description) == "" {
		missing["description"] = "required"
	}
	if strings.TrimSpace(e.Category) == "" {
		missing["category"] = "required"
	}
	if e.RegistrationDeadline == nil {
		missing["registration_deadline"] = "required"
	}
	if e.StartTime == nil {
		missing["start_time"] = "required"
	}
	if e.EndTime == nil {
		missing["end_time"] = "required"
	}
	if len(missing) > 0 {
		return ErrValidationMeta("event is incomplete", missing)
	}
	if !e.EndTime.After(*e.StartTime) {
		return ErrValidation("end_time must be after start_time")
	}

	t := now.UTC()
	e.Status = StatusPublished
	e.PublishedAt = &t
	e.UpdatedAt = t
	return nil
}

// Transition applies a manual forward status move. Draft can only leave via
// Publish; no backward transitions.
func (e *Event) Transition(target EventStatus, now time.Time) error {
	if e.Status == StatusDraft {
		return ErrInvalidState("draft events can only be published")
	}
	if target == StatusDraft || !target.Valid() {
		return ErrValidation("target status must be one of published, ongoing, completed, closed")
	}
	if statusRank[target] <= statusRank[e.Status] {
		return ErrInvalidState(fmt.Sprintf("cannot move %s -> %s", e.Status, target))
	}
	e.Status = target
	e.UpdatedAt = now.UTC()
	return nil
}

func (e *Event) FindItem(name string) *MerchItem {
	for i := range e.Merchandise {
		if e.Merchandise[i].Name == name {
			return &e.Merchandise[i]
		}
	}
	return nil
}

func (m *MerchItem) FindVariant(label string) *MerchVariant {
	for i := range m.Variants {
		if m.Variants[i].Label == label {
			return &m.Variants[i]
		}
	}
	return nil
}

func validateForm(fields []FormField) error {
	for i, f := range fields {
		if strings.TrimSpace(f.Label) == "" {
			return ErrValidationMeta("invalid form field", map[string]string{
				"index": fmt.Sprintf("%d", i), "label": "required",
			})
		}
	}
	return nil
}

func validateCatalog(items []MerchItem) error {
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			return ErrValidation("merchandise item name is required")
		}
		if it.PurchaseLimit < 0 {
			return ErrValidation("purchase_limit must be >= 0")
		}
		for _, v := range it.Variants {
			if strings.TrimSpace(v.Label) == "" {
				return ErrValidationMeta("invalid variant", map[string]string{"item": it.Name, "label": "required"})
			}
			if v.Stock < 0 {
				return ErrValidationMeta("invalid variant", map[string]string{"item": it.Name, "stock": "must be >= 0"})
			}
		}
	}
	return nil
}
