package service

import (
	"Evergreen/internal/api/dto"
	"Evergreen/internal/pkg/consts"
	mongodb "Evergreen/internal/pkg/mongo"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/mongo"
)

// PresenceService 在线状态服务接口定义
type PresenceService interface {
	Online(ctx context.Context, uid string, email string) error
	Heartbeat(ctx context.Context, uid string) error
	Offline(ctx context.Context, uid string) error
	Get(ctx context.Context, uid string) (*dto.PresenceDTO, error)
	SweepStale(ctx context.Context) (int, error)
}

type presenceServiceImpl struct {
	presenceRepo mongodb.PresenceRepo
	liveness     Liveness
	publisher    Publisher
}

func NewPresenceService(presenceRepo mongodb.PresenceRepo, liveness Liveness, publisher Publisher) PresenceService {
	return &presenceServiceImpl{
		presenceRepo: presenceRepo,
		liveness:     liveness,
		publisher:    publisher,
	}
}

// Online 上线：写状态文档 + 刷新心跳键
// 重复连接幂等，只有状态翻转时才广播
func (s *presenceServiceImpl) Online(ctx context.Context, uid string, email string) error {
	prev, err := s.presenceRepo.Get(ctx, uid)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return UnExpectedError
	}

	if err = s.presenceRepo.Upsert(ctx, uid, consts.PresenceOnline, email); err != nil {
		return UnExpectedError
	}
	if err = s.liveness.Refresh(ctx, uid); err != nil {
		log.ErrorContext(ctx, "refresh liveness failed", "uid", uid, "err", err)
	}

	if prev == nil || prev.State != consts.PresenceOnline {
		s.publishTransition(ctx, uid, consts.PresenceOnline, email)
	}
	return nil
}

// Heartbeat 刷新心跳键，由 ws ping 驱动
func (s *presenceServiceImpl) Heartbeat(ctx context.Context, uid string) error {
	return s.liveness.Refresh(ctx, uid)
}

// Offline 下线：尽力而为，连接断开和登出都会调用
func (s *presenceServiceImpl) Offline(ctx context.Context, uid string) error {
	prev, err := s.presenceRepo.Get(ctx, uid)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return UnExpectedError
	}

	if err = s.presenceRepo.Upsert(ctx, uid, consts.PresenceOffline, ""); err != nil {
		return UnExpectedError
	}
	if err = s.liveness.Clear(ctx, uid); err != nil {
		log.ErrorContext(ctx, "clear liveness failed", "uid", uid, "err", err)
	}

	if prev != nil && prev.State == consts.PresenceOnline {
		s.publishTransition(ctx, uid, consts.PresenceOffline, prev.Email)
	}
	return nil
}

// Get 查询状态，无记录视为离线
func (s *presenceServiceImpl) Get(ctx context.Context, uid string) (*dto.PresenceDTO, error) {
	p, err := s.presenceRepo.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &dto.PresenceDTO{
				UID:   uid,
				State: consts.PresenceOffline,
			}, nil
		}
		return nil, UnExpectedError
	}

	return &dto.PresenceDTO{
		UID:       p.UID,
		State:     p.State,
		Email:     p.Email,
		ChangedAt: p.ChangedAt,
	}, nil
}

// SweepStale 清理僵尸在线：心跳键过期但文档还是 online 的用户
func (s *presenceServiceImpl) SweepStale(ctx context.Context) (int, error) {
	online, err := s.presenceRepo.ListOnline(ctx)
	if err != nil {
		return 0, err
	}

	swept := 0
	for _, p := range online {
		alive, err := s.liveness.Alive(ctx, p.UID)
		if err != nil {
			log.ErrorContext(ctx, "check liveness failed", "uid", p.UID, "err", err)
			continue
		}
		if alive {
			continue
		}

		if err = s.presenceRepo.Upsert(ctx, p.UID, consts.PresenceOffline, ""); err != nil {
			log.ErrorContext(ctx, "sweep presence failed", "uid", p.UID, "err", err)
			continue
		}
		s.publishTransition(ctx, p.UID, consts.PresenceOffline, p.Email)
		swept++
	}
	return swept, nil
}

func (s *presenceServiceImpl) publishTransition(ctx context.Context, uid string, state string, email string) {
	event := &dto.PresenceDTO{
		UID:       uid,
		State:     state,
		Email:     email,
		ChangedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err = s.publisher.Publish(ctx, consts.PresenceChannelKey+uid, data); err != nil {
		log.ErrorContext(ctx, "publish presence failed", "uid", uid, "err", err)
	}
}
