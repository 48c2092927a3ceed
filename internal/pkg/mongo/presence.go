package mongo

import "time"

// Presence 在线状态模型，每个用户恰好一条，永不删除
type Presence struct {
	UID       string    `bson:"_id" json:"uid"`
	State     string    `bson:"state" json:"state"`           // online / offline
	Email     string    `bson:"email,omitempty" json:"email"` // 冗余邮箱，便于展示
	ChangedAt time.Time `bson:"changed_at" json:"changedAt"`
}
