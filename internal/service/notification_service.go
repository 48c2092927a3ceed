package service

import (
	"Evergreen/internal/api/dto"
	"Evergreen/internal/pkg/consts"
	mongodb "Evergreen/internal/pkg/mongo"
	"context"
	log "log/slog"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationService 通知服务接口定义
type NotificationService interface {
	Notify(ctx context.Context, n *mongodb.Notification) error
	List(ctx context.Context, uid string) ([]*dto.NotificationDTO, error)
	ClearRead(ctx context.Context, uid string) (int64, error)
	Dismiss(ctx context.Context, uid string, id string) error
	Badge(ctx context.Context, uid string) (*dto.BadgeDTO, error)
}

type notificationServiceImpl struct {
	notifRepo mongodb.NotificationRepo
	publisher Publisher
}

func NewNotificationService(notifRepo mongodb.NotificationRepo, publisher Publisher) NotificationService {
	return &notificationServiceImpl{
		notifRepo: notifRepo,
		publisher: publisher,
	}
}

// Notify 落库并推送实时事件，由 Kafka 消费端调用
// 落库失败返回错误交给消费端重试；推送失败不阻断
func (s *notificationServiceImpl) Notify(ctx context.Context, n *mongodb.Notification) error {
	n.Read = false
	if err := s.notifRepo.Create(ctx, n); err != nil {
		return err
	}

	event := &dto.NotifyEventDTO{
		Type:         "notification",
		Notification: s.toNotificationDTO(n),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return nil
	}
	if err = s.publisher.Publish(ctx, consts.NotifyChannelKey+n.RecipientUID, data); err != nil {
		log.ErrorContext(ctx, "publish notification failed", "recipient", n.RecipientUID, "err", err)
	}
	return nil
}

// List 获取通知列表（倒序），随后逐条独立置读
// 部分失败不回滚：漏掉的下次查看时自然补上
func (s *notificationServiceImpl) List(ctx context.Context, uid string) ([]*dto.NotificationDTO, error) {
	list, err := s.notifRepo.List(ctx, uid, consts.NotificationListLimit)
	if err != nil {
		return nil, UnExpectedError
	}

	res := make([]*dto.NotificationDTO, 0, len(list))
	for _, n := range list {
		res = append(res, s.toNotificationDTO(n))
		if n.Read {
			continue
		}
		if err = s.notifRepo.MarkRead(ctx, uid, n.ID); err != nil {
			log.ErrorContext(ctx, "mark notification read failed", "id", n.ID.Hex(), "err", err)
		}
	}
	return res, nil
}

// ClearRead 清空已读通知
func (s *notificationServiceImpl) ClearRead(ctx context.Context, uid string) (int64, error) {
	n, err := s.notifRepo.DeleteRead(ctx, uid)
	if err != nil {
		return 0, UnExpectedError
	}
	return n, nil
}

// Dismiss 删除单条通知，目标不存在视为成功
func (s *notificationServiceImpl) Dismiss(ctx context.Context, uid string, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrParamInvalid
	}
	if err = s.notifRepo.Delete(ctx, uid, oid); err != nil {
		return UnExpectedError
	}
	return nil
}

// Badge 未读角标，最多统计 BadgeLimit 条
func (s *notificationServiceImpl) Badge(ctx context.Context, uid string) (*dto.BadgeDTO, error) {
	list, err := s.notifRepo.ListUnread(ctx, uid, consts.BadgeLimit)
	if err != nil {
		return nil, UnExpectedError
	}

	items := make([]*dto.NotificationDTO, 0, len(list))
	for _, n := range list {
		items = append(items, s.toNotificationDTO(n))
	}
	return &dto.BadgeDTO{
		Count: len(items),
		Items: items,
	}, nil
}

func (s *notificationServiceImpl) toNotificationDTO(n *mongodb.Notification) *dto.NotificationDTO {
	return &dto.NotificationDTO{
		ID:         n.ID.Hex(),
		SenderUID:  n.SenderUID,
		SenderName: n.SenderName,
		Type:       n.Type,
		Preview:    n.Preview,
		ConvKey:    n.ConvKey,
		Read:       n.Read,
		CreatedAt:  n.CreatedAt,
	}
}
