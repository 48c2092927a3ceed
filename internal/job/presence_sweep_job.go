package job

import (
	"Evergreen/internal/service"
	"context"
	log "log/slog"
)

// PresenceSweepJob 定时清理心跳过期却仍标记在线的用户
type PresenceSweepJob struct {
	presenceSvc service.PresenceService
}

func NewPresenceSweepJob(presenceSvc service.PresenceService) *PresenceSweepJob {
	return &PresenceSweepJob{presenceSvc: presenceSvc}
}

func (s *PresenceSweepJob) Run() {
	ctx := context.Background()

	swept, err := s.presenceSvc.SweepStale(ctx)
	if err != nil {
		log.Error("presence sweep job failed", "err", err)
		return
	}
	if swept > 0 {
		log.Info("presence sweep job finished", "swept_count", swept)
	}
}
