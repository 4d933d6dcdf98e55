package dto

import "time"

type CreateEventReq struct {
	Name string `json:"name" validate:"required,max=200"`
	Type string `json:"type" validate:"required,oneof=normal merchandise"`
}

type FormFieldReq struct {
	Label    string   `json:"label" validate:"required"`
	Type     string   `json:"type" validate:"required,oneof=text number dropdown checkbox"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

type MerchVariantReq struct {
	Label string `json:"label" validate:"required"`
	Stock int    `json:"stock" validate:"min=0"`
}

type MerchItemReq struct {
	Name          string            `json:"name" validate:"required"`
	PurchaseLimit int               `json:"purchase_limit" validate:"min=0"`
	Variants      []MerchVariantReq `json:"variants" validate:"min=1,dive"`
}

type UpdateEventReq struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Type        *string `json:"type,omitempty" validate:"omitempty,oneof=normal merchandise"`
	Eligibility *string `json:"eligibility,omitempty" validate:"omitempty,oneof=internal external both"`

	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	StartTime            *time.Time `json:"start_time,omitempty"`
	EndTime              *time.Time `json:"end_time,omitempty"`

	RegLimit *int `json:"reg_limit,omitempty" validate:"omitempty,min=0"`
	Fee      *int `json:"fee,omitempty" validate:"omitempty,min=0"`

	CustomForm  *[]FormFieldReq `json:"custom_form,omitempty" validate:"omitempty,dive"`
	Merchandise *[]MerchItemReq `json:"merchandise,omitempty" validate:"omitempty,dive"`
}

type TransitionReq struct {
	Status string `json:"status" validate:"required,oneof=ongoing completed closed"`
}

// EventResp is the stable API response model. display_status is derived at
// read time from the stored status and the event window.
type EventResp struct {
	ID          string `json:"id"`
	OrganizerID string `json:"organizer_id"`

	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`

	Type          string `json:"type"`
	Status        string `json:"status"`
	DisplayStatus string `json:"display_status"`
	Eligibility   string `json:"eligibility"`

	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	StartTime            *time.Time `json:"start_time,omitempty"`
	EndTime              *time.Time `json:"end_time,omitempty"`

	// 0 means unlimited
	RegLimit int `json:"reg_limit"`
	Fee      int `json:"fee"`

	CustomForm  []FormFieldResp `json:"custom_form"`
	Merchandise []MerchItemResp `json:"merchandise"`

	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type FormFieldResp struct {
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

type MerchVariantResp struct {
	Label string `json:"label"`
	Stock int    `json:"stock"`
}

type MerchItemResp struct {
	Name          string             `json:"name"`
	PurchaseLimit int                `json:"purchase_limit"`
	Variants      []MerchVariantResp `json:"variants"`
}

type PageResp[T any] struct {
	Items    []T `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}
