package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RegistrationStatus string

const (
	RegStatusRegistered RegistrationStatus = "registered"
	RegStatusPurchased  RegistrationStatus = "purchased"
	RegStatusCancelled  RegistrationStatus = "cancelled"
)

// OrderLine is a purchase snapshot taken at admission time, not a live
// reference into the catalog.
type OrderLine struct {
	ItemName     string `json:"item_name"`
	VariantLabel string `json:"variant_label"`
	Quantity     int    `json:"quantity"`
}

type Registration struct {
	ID            string
	EventID       string
	ParticipantID string
	TicketID      string

	Type   EventType
	Status RegistrationStatus

	FormData map[string]any
	Order    []OrderLine

	Attended     bool
	TeamComplete bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

type TicketStatus string

const (
	TicketActive    TicketStatus = "active"
	TicketCancelled TicketStatus = "cancelled"
)

type Ticket struct {
	ID            string
	EventID       string
	ParticipantID string

	Code      string
	QRPayload string

	Status    TicketStatus
	CreatedAt time.Time
}

// NewTicket mints a ticket with a human-meaningful code and a QR-encodable
// payload binding event + participant + code.
func NewTicket(eventID, participantID string, now time.Time) *Ticket {
	code := ticketCode()
	payload := fmt.Sprintf("%s|%s|%s", eventID, participantID, code)
	return &Ticket{
		ID:            uuid.NewString(),
		EventID:       eventID,
		ParticipantID: participantID,
		Code:          code,
		QRPayload:     base64.StdEncoding.EncodeToString([]byte(payload)),
		Status:        TicketActive,
		CreatedAt:     now.UTC(),
	}
}

func ticketCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "FEL-" + raw[:10]
}

// NewNormalRegistration pairs a ticket with a registered admission.
func NewNormalRegistration(eventID, participantID string, formData map[string]any, ticket *Ticket, now time.Time) *Registration {
	return &Registration{
		ID:            uuid.NewString(),
		EventID:       eventID,
		ParticipantID: participantID,
		TicketID:      ticket.ID,
		Type:          TypeNormal,
		Status:        RegStatusRegistered,
		FormData:      formData,
		CreatedAt:     now.UTC(),
		UpdatedAt:     now.UTC(),
	}
}

// NewPurchase pairs a ticket with a purchased admission carrying the order
// snapshot.
func NewPurchase(eventID, participantID string, order []OrderLine, ticket *Ticket, now time.Time) *Registration {
	return &Registration{
		ID:            uuid.NewString(),
		EventID:       eventID,
		ParticipantID: participantID,
		TicketID:      ticket.ID,
		Type:          TypeMerchandise,
		Status:        RegStatusPurchased,
		Order:         order,
		CreatedAt:     now.UTC(),
		UpdatedAt:     now.UTC(),
	}
}
