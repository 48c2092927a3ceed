package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PresenceRepo interface {
	Upsert(ctx context.Context, uid string, state string, email string) error
	Get(ctx context.Context, uid string) (*Presence, error)
	ListOnline(ctx context.Context) ([]*Presence, error)
}

type presenceRepoImpl struct {
	col *mongo.Collection
}

func NewPresenceRepo(db *mongo.Database) PresenceRepo {
	return &presenceRepoImpl{
		col: db.Collection("status"),
	}
}

// Upsert 写入用户状态；email 为空时保留原值（merge 语义）
func (s *presenceRepoImpl) Upsert(ctx context.Context, uid string, state string, email string) error {
	set := bson.M{
		"state":      state,
		"changed_at": time.Now().UTC(),
	}
	if email != "" {
		set["email"] = email
	}

	filter := bson.M{"_id": uid}
	update := bson.M{"$set": set}
	opts := options.Update().SetUpsert(true)

	_, err := s.col.UpdateOne(ctx, filter, update, opts)
	return err
}

// Get 查询用户状态
func (s *presenceRepoImpl) Get(ctx context.Context, uid string) (*Presence, error) {
	var p Presence
	err := s.col.FindOne(ctx, bson.M{"_id": uid}).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListOnline 列出当前标记为在线的用户
func (s *presenceRepoImpl) ListOnline(ctx context.Context) ([]*Presence, error) {
	cursor, err := s.col.Find(ctx, bson.M{"state": "online"})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*Presence
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}
