package dto

import "time"

type RegisterReq struct {
	FormData map[string]any `json:"form_data,omitempty"`
}

type OrderLineReq struct {
	ItemName     string `json:"item_name" validate:"required"`
	VariantLabel string `json:"variant_label" validate:"required"`
	Quantity     int    `json:"quantity" validate:"required,min=1"`
}

type PurchaseReq struct {
	Lines []OrderLineReq `json:"lines" validate:"required,min=1,dive"`
}

type OrderLineResp struct {
	ItemName     string `json:"item_name"`
	VariantLabel string `json:"variant_label"`
	Quantity     int    `json:"quantity"`
}

type TicketResp struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	QRPayload string    `json:"qr_payload"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type AdmissionResp struct {
	ID            string `json:"id"`
	EventID       string `json:"event_id"`
	ParticipantID string `json:"participant_id"`

	Type   string `json:"type"`
	Status string `json:"status"`

	FormData map[string]any  `json:"form_data,omitempty"`
	Order    []OrderLineResp `json:"order,omitempty"`

	Ticket *TicketResp `json:"ticket,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
