package service

import (
	mongodb "Evergreen/internal/pkg/mongo"
	"Evergreen/internal/pkg/security"
	"context"
)

// Publisher 实时事件发布端，生产环境为 Redis Pub/Sub
type Publisher interface {
	Publish(ctx context.Context, channel string, payload interface{}) error
}

// PublisherFunc 函数适配器
type PublisherFunc func(ctx context.Context, channel string, payload interface{}) error

func (f PublisherFunc) Publish(ctx context.Context, channel string, payload interface{}) error {
	return f(ctx, channel, payload)
}

// NotificationProducer 通知事件总线的生产端
type NotificationProducer interface {
	Produce(ctx context.Context, n *mongodb.Notification) error
}

// Liveness 在线心跳键，带 TTL
type Liveness interface {
	Refresh(ctx context.Context, uid string) error
	Alive(ctx context.Context, uid string) (bool, error)
	Clear(ctx context.Context, uid string) error
}

// GoogleVerifier 联邦登录凭证校验端
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*security.GoogleTokenInfo, error)
}
