package redis

import (
	"Evergreen/internal/pkg/consts"
	"context"
	"time"
)

// LivenessStore 在线心跳键，TTL 内未刷新即视为掉线
type LivenessStore struct {
	ttl time.Duration
}

func NewLivenessStore(ttl time.Duration) *LivenessStore {
	return &LivenessStore{ttl: ttl}
}

func (s *LivenessStore) Refresh(ctx context.Context, uid string) error {
	return SetWithExpiration(ctx, consts.PresenceLiveKey+uid, "1", s.ttl)
}

func (s *LivenessStore) Alive(ctx context.Context, uid string) (bool, error) {
	return Exists(ctx, consts.PresenceLiveKey+uid)
}

func (s *LivenessStore) Clear(ctx context.Context, uid string) error {
	return DeleteKey(ctx, consts.PresenceLiveKey+uid)
}
