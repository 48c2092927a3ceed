package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification 通知模型
type Notification struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientUID string             `bson:"recipient_uid" json:"recipientUid"` // 通知接收者
	SenderUID    string             `bson:"sender_uid" json:"senderUid"`       // 触发动作的发送者
	SenderName   string             `bson:"sender_name" json:"senderName"`
	Type         string             `bson:"type" json:"type"`        // 目前仅 message
	Preview      string             `bson:"preview" json:"preview"`  // 触发内容的截断预览
	ConvKey      string             `bson:"conv_key" json:"convKey"` // 关联会话，用于点击跳转
	Read         bool               `bson:"read" json:"read"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}
