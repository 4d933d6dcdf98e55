package domain

type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusPublished EventStatus = "published"
	StatusOngoing   EventStatus = "ongoing"
	StatusCompleted EventStatus = "completed"
	StatusClosed    EventStatus = "closed"
)

func (s EventStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusOngoing, StatusCompleted, StatusClosed:
		return true
	}
	return false
}

// statusRank orders the lifecycle for forward-only manual transitions.
var statusRank = map[EventStatus]int{
	StatusDraft:     0,
	StatusPublished: 1,
	StatusOngoing:   2,
	StatusCompleted: 3,
	StatusClosed:    4,
}

type EventType string

const (
	TypeNormal      EventType = "normal"
	TypeMerchandise EventType = "merchandise"
)

func (t EventType) Valid() bool {
	return t == TypeNormal || t == TypeMerchandise
}

type Eligibility string

const (
	EligibilityInternal Eligibility = "internal"
	EligibilityExternal Eligibility = "external"
	EligibilityBoth     Eligibility = "both"
)

func (e Eligibility) Valid() bool {
	return e == EligibilityInternal || e == EligibilityExternal || e == EligibilityBoth
}
