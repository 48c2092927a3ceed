package dto

import "time"

// SendMessageDTO 发送消息请求体
type SendMessageDTO struct {
	PeerUID     string `json:"peer_uid" binding:"required"`
	Kind        string `json:"kind" binding:"required,oneof=text sticker voice"`
	Text        string `json:"text"`
	StickerURL  string `json:"sticker_url"`
	StickerName string `json:"sticker_name"`
	VoiceURL    string `json:"voice_url"`
	Duration    int    `json:"duration"` // 整秒
}

// EditMessageDTO 编辑消息请求体
type EditMessageDTO struct {
	Text string `json:"text" binding:"required"`
}

// MessageDTO 消息明细响应
type MessageDTO struct {
	ID          string     `json:"id"`
	ConvKey     string     `json:"conv_key"`
	Kind        string     `json:"kind"`
	Text        string     `json:"text,omitempty"`
	StickerURL  string     `json:"sticker_url,omitempty"`
	StickerName string     `json:"sticker_name,omitempty"`
	VoiceURL    string     `json:"voice_url,omitempty"`
	Duration    int        `json:"duration,omitempty"`
	SenderUID   string     `json:"sender_uid"`
	ReceiverUID string     `json:"receiver_uid"`
	Read        bool       `json:"read"`
	Edited      bool       `json:"edited"`
	EditedAt    *time.Time `json:"edited_at,omitempty"`
	Deleted     bool       `json:"deleted_for_everyone,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ConversationDTO 会话列表项响应
type ConversationDTO struct {
	ConvKey        string    `json:"conv_key"`
	PeerUID        string    `json:"peer_uid"`
	LastMsgPreview string    `json:"last_msg_preview"`
	LastMsgKind    string    `json:"last_msg_kind"`
	LastSenderUID  string    `json:"last_sender_uid"`
	LastMessageAt  time.Time `json:"last_message_at"`
}

// ChatEventDTO 会话频道推送事件
type ChatEventDTO struct {
	Type      string      `json:"type"` // message / edited / deleted / read
	ConvKey   string      `json:"conv_key"`
	Message   *MessageDTO `json:"message,omitempty"`
	ReaderUID string      `json:"reader_uid,omitempty"` // 已读回执
}
