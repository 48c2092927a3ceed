package model

import (
	"time"
)

// Conversation 会话快照，冗余最后一条消息用于列表展示
type Conversation struct {
	ConvKey        string `gorm:"type:varchar(80);primaryKey"` // 两端 UID 排序拼接
	UIDLow         string `gorm:"type:varchar(36);index:idx_uid_low"`
	UIDHigh        string `gorm:"type:varchar(36);index:idx_uid_high"`
	LastMsgPreview string `gorm:"type:varchar(200)"`
	LastMsgKind    string `gorm:"type:varchar(20)"`
	LastSenderUID  string `gorm:"type:varchar(36)"`
	LastMessageAt  time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Conversation) TableName() string {
	return "conversations"
}
