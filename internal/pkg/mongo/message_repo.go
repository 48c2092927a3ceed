package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MessageRepo interface {
	SaveMessage(ctx context.Context, msg *Message) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Message, error)
	ListByConversation(ctx context.Context, convKey string) ([]*Message, error)
	MarkRead(ctx context.Context, convKey string, receiverUID string) (int64, error)
	SetEdited(ctx context.Context, id primitive.ObjectID, text string, editedAt time.Time) error
	SetTombstone(ctx context.Context, id primitive.ObjectID, placeholder string) error
}

type messageRepoImpl struct {
	col *mongo.Collection
}

func NewMessageRepo(db *mongo.Database) MessageRepo {
	return &messageRepoImpl{
		col: db.Collection("message"),
	}
}

// SaveMessage 将消息存入 MongoDB
// CreatedAt 在此处赋值，作为会话内唯一的定序时钟，不信任客户端时间
func (s *messageRepoImpl) SaveMessage(ctx context.Context, msg *Message) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	msg.CreatedAt = time.Now().UTC()
	_, err := s.col.InsertOne(ctx, msg)
	return err
}

// GetByID 精确查询
func (s *messageRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*Message, error) {
	var msg Message
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListByConversation 拉取会话全部消息
// 按 created_at 升序，时间相同时按 _id 兜底定序
func (s *messageRepoImpl) ListByConversation(ctx context.Context, convKey string) ([]*Message, error) {
	filter := bson.M{"conv_key": convKey}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var messages []*Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}

// MarkRead 将会话内发给 receiverUID 的未读消息置为已读
// 条件更新天然幂等：已读消息不再匹配，重复调用只是 0 行修改
func (s *messageRepoImpl) MarkRead(ctx context.Context, convKey string, receiverUID string) (int64, error) {
	filter := bson.M{
		"conv_key":     convKey,
		"receiver_uid": receiverUID,
		"read":         false,
	}
	update := bson.M{"$set": bson.M{"read": true}}

	result, err := s.col.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// SetEdited 覆写文本并打上编辑标记，已撤回的消息不可再编辑
func (s *messageRepoImpl) SetEdited(ctx context.Context, id primitive.ObjectID, text string, editedAt time.Time) error {
	filter := bson.M{
		"_id":                  id,
		"deleted_for_everyone": bson.M{"$ne": true},
	}
	update := bson.M{"$set": bson.M{
		"text":      text,
		"edited":    true,
		"edited_at": editedAt,
	}}

	result, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetTombstone 撤回消息：清空载荷并写入占位符，单向不可逆
func (s *messageRepoImpl) SetTombstone(ctx context.Context, id primitive.ObjectID, placeholder string) error {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$set": bson.M{
			"deleted_for_everyone": true,
			"text":                 placeholder,
		},
		"$unset": bson.M{
			"sticker_url":  "",
			"sticker_name": "",
			"voice_url":    "",
			"duration":     "",
		},
	}

	result, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
