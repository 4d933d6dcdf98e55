package dto

type PostMessageReq struct {
	Content         string  `json:"content" validate:"required,max=2000"`
	ParentMessageID *string `json:"parent_message_id,omitempty" validate:"omitempty,uuid"`
	IsAnnouncement  bool    `json:"is_announcement"`
}

type ReactReq struct {
	Emoji string `json:"emoji" validate:"required"`
}

type AccessContextResp struct {
	Event          EventResp `json:"event"`
	CanModerate    bool      `json:"can_moderate"`
	CanAnnounce    bool      `json:"can_announce"`
	CanParticipate bool      `json:"can_participate"`
}
