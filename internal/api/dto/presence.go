package dto

import "time"

// PresenceDTO 在线状态响应/推送
type PresenceDTO struct {
	UID       string    `json:"uid"`
	State     string    `json:"state"`
	Email     string    `json:"email,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}
