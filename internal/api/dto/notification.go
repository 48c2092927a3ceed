package dto

import "time"

// NotificationDTO 通知明细响应
type NotificationDTO struct {
	ID         string    `json:"id"`
	SenderUID  string    `json:"sender_uid"`
	SenderName string    `json:"sender_name"`
	Type       string    `json:"type"`
	Preview    string    `json:"preview"`
	ConvKey    string    `json:"conv_key"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// BadgeDTO 未读角标
type BadgeDTO struct {
	Count int                `json:"count"`
	Items []*NotificationDTO `json:"items"`
}

// NotifyEventDTO 用户通知频道推送事件
type NotifyEventDTO struct {
	Type         string           `json:"type"` // notification
	Notification *NotificationDTO `json:"notification"`
}
