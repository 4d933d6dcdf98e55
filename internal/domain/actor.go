package domain

// Actor is the resolved identity attached to every request by the auth layer.
type Actor struct {
	ID   string
	Role string
}

const (
	RoleOrganizer   = "organizer"
	RoleParticipant = "participant"
	RoleAdmin       = "admin"
)

type ParticipantType string

const (
	ParticipantInternal ParticipantType = "internal"
	ParticipantExternal ParticipantType = "external"
)

// Participant and Organizer are profile projections resolved through an
// external profile store; this core never mutates them.
type Participant struct {
	UserID   string
	FullName string
	Type     ParticipantType
}

type Organizer struct {
	UserID string
	Name   string
}

// Eligible reports whether a participant type satisfies an event's
// eligibility gate.
func (t ParticipantType) Eligible(e Eligibility) bool {
	if e == EligibilityBoth {
		return true
	}
	return string(t) == string(e)
}
