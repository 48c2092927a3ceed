package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepo interface {
	Create(ctx context.Context, n *Notification) error
	List(ctx context.Context, recipientUID string, limit int64) ([]*Notification, error)
	ListUnread(ctx context.Context, recipientUID string, limit int64) ([]*Notification, error)
	MarkRead(ctx context.Context, recipientUID string, id primitive.ObjectID) error
	DeleteRead(ctx context.Context, recipientUID string) (int64, error)
	Delete(ctx context.Context, recipientUID string, id primitive.ObjectID) error
}

type notificationRepoImpl struct {
	col *mongo.Collection
}

func NewNotificationRepo(db *mongo.Database) NotificationRepo {
	return &notificationRepoImpl{
		col: db.Collection("notifications"),
	}
}

// Create 插入新通知，时间由仓储赋值
func (s *notificationRepoImpl) Create(ctx context.Context, n *Notification) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	n.CreatedAt = time.Now().UTC()
	_, err := s.col.InsertOne(ctx, n)
	return err
}

// List 获取用户的通知列表 (按时间倒序)
func (s *notificationRepoImpl) List(ctx context.Context, recipientUID string, limit int64) ([]*Notification, error) {
	filter := bson.M{"recipient_uid": recipientUID}
	return s.find(ctx, filter, limit)
}

// ListUnread 获取用户的未读通知 (按时间倒序，带上限)
func (s *notificationRepoImpl) ListUnread(ctx context.Context, recipientUID string, limit int64) ([]*Notification, error) {
	filter := bson.M{"recipient_uid": recipientUID, "read": false}
	return s.find(ctx, filter, limit)
}

func (s *notificationRepoImpl) find(ctx context.Context, filter bson.M, limit int64) ([]*Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*Notification
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// MarkRead 标记单条通知为已读
func (s *notificationRepoImpl) MarkRead(ctx context.Context, recipientUID string, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "recipient_uid": recipientUID}
	update := bson.M{"$set": bson.M{"read": true}}
	_, err := s.col.UpdateOne(ctx, filter, update)
	return err
}

// DeleteRead 删除用户所有已读通知
func (s *notificationRepoImpl) DeleteRead(ctx context.Context, recipientUID string) (int64, error) {
	filter := bson.M{"recipient_uid": recipientUID, "read": true}
	result, err := s.col.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// Delete 删除单条通知；记录不存在视为成功（幂等）
func (s *notificationRepoImpl) Delete(ctx context.Context, recipientUID string, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "recipient_uid": recipientUID}
	_, err := s.col.DeleteOne(ctx, filter)
	return err
}
