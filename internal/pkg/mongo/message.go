package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message MongoDB 消息明细模型
type Message struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConvKey     string             `bson:"conv_key" json:"convKey"`                    // 会话标识 uidA_uidB
	Kind        string             `bson:"kind" json:"kind"`                           // text / sticker / voice
	Text        string             `bson:"text,omitempty" json:"text,omitempty"`       // 文本内容或占位符
	StickerURL  string             `bson:"sticker_url,omitempty" json:"stickerUrl,omitempty"`
	StickerName string             `bson:"sticker_name,omitempty" json:"stickerName,omitempty"`
	VoiceURL    string             `bson:"voice_url,omitempty" json:"voiceUrl,omitempty"`
	Duration    int                `bson:"duration,omitempty" json:"duration,omitempty"` // 语音时长（整秒）
	SenderUID   string             `bson:"sender_uid" json:"senderUid"`
	ReceiverUID string             `bson:"receiver_uid" json:"receiverUid"`
	Read        bool               `bson:"read" json:"read"`
	Edited      bool               `bson:"edited,omitempty" json:"edited,omitempty"`
	EditedAt    *time.Time         `bson:"edited_at,omitempty" json:"editedAt,omitempty"`
	Deleted     bool               `bson:"deleted_for_everyone,omitempty" json:"deletedForEveryone,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"` // 写入时由仓储赋值，统一定序时钟
}
