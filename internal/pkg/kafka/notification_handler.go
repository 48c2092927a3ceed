package kafka

import (
	"Evergreen/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// NotificationHandler 消费通知事件：落库 + 实时推送
// 不做去重，重复投递由重试语义兜底
type NotificationHandler struct {
	notifySvc service.NotificationService
}

func NewNotificationHandler(notifySvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notifySvc: notifySvc,
	}
}

func (s *NotificationHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("notification consumer setup")
	return nil
}

func (s *NotificationHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("notification consumer cleanup")
	return nil
}

func (s *NotificationHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-notification consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("process batch error", "err", err)
		return err
	}
	log.Info("topic-notification consume claim end")
	return nil
}

func (s *NotificationHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	n, err := ToNotification(msg)
	if err != nil {
		// 消息损坏无法重试，记录后跳过
		return nil
	}
	return s.notifySvc.Notify(ctx, n)
}
