package repository

import (
	"Evergreen/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConversationRepo interface {
	Touch(ctx context.Context, conv *model.Conversation) error
	GetByKey(ctx context.Context, convKey string) (*model.Conversation, error)
	ListByMember(ctx context.Context, uid string) ([]*model.Conversation, error)
}

type ConversationRepoImpl struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepo {
	return &ConversationRepoImpl{db: db}
}

// Touch 首条消息时建会话，之后只滚动最后一条消息的快照
func (s *ConversationRepoImpl) Touch(ctx context.Context, conv *model.Conversation) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "conv_key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"last_msg_preview", "last_msg_kind", "last_sender_uid", "last_message_at", "updated_at",
			}),
		}).
		Create(conv).Error
}

func (s *ConversationRepoImpl) GetByKey(ctx context.Context, convKey string) (*model.Conversation, error) {
	conv := &model.Conversation{}
	result := s.db.WithContext(ctx).
		Where("conv_key = ?", convKey).
		First(conv)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return conv, nil
}

// ListByMember 拉取用户参与的会话，按最后消息时间倒序
func (s *ConversationRepoImpl) ListByMember(ctx context.Context, uid string) ([]*model.Conversation, error) {
	convs := make([]*model.Conversation, 0)
	result := s.db.WithContext(ctx).
		Where("uid_low = ? OR uid_high = ?", uid, uid).
		Order("last_message_at DESC").
		Find(&convs)
	if result.Error != nil {
		return nil, result.Error
	}
	return convs, nil
}
