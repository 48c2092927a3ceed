package service

import (
	"Evergreen/internal/pkg/consts"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPresenceFixture() (PresenceService, *fakePresenceRepo, *fakeLiveness, *fakePublisher) {
	repo := newFakePresenceRepo()
	liveness := newFakeLiveness()
	publisher := &fakePublisher{}
	svc := NewPresenceService(repo, liveness, publisher)
	return svc, repo, liveness, publisher
}

func TestPresenceOnline(t *testing.T) {
	ctx := context.Background()

	t.Run("first connect broadcasts", func(t *testing.T) {
		svc, repo, liveness, publisher := newPresenceFixture()
		require.NoError(t, svc.Online(ctx, "alice", "alice@example.com"))

		p, err := repo.Get(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, consts.PresenceOnline, p.State)
		assert.Equal(t, "alice@example.com", p.Email)

		alive, err := liveness.Alive(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, alive)

		require.Len(t, publisher.events, 1)
		assert.Equal(t, consts.PresenceChannelKey+"alice", publisher.events[0].channel)
	})

	t.Run("repeated connect idempotent", func(t *testing.T) {
		svc, _, _, publisher := newPresenceFixture()
		require.NoError(t, svc.Online(ctx, "alice", "alice@example.com"))
		require.NoError(t, svc.Online(ctx, "alice", "alice@example.com"))
		require.NoError(t, svc.Online(ctx, "alice", ""))

		assert.Len(t, publisher.events, 1)
	})

	t.Run("empty email keeps previous", func(t *testing.T) {
		svc, repo, _, _ := newPresenceFixture()
		require.NoError(t, svc.Online(ctx, "alice", "alice@example.com"))
		require.NoError(t, svc.Offline(ctx, "alice"))
		require.NoError(t, svc.Online(ctx, "alice", ""))

		p, err := repo.Get(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", p.Email)
	})
}

func TestPresenceOffline(t *testing.T) {
	ctx := context.Background()

	t.Run("transition broadcasts once", func(t *testing.T) {
		svc, repo, liveness, publisher := newPresenceFixture()
		require.NoError(t, svc.Online(ctx, "alice", "alice@example.com"))
		require.NoError(t, svc.Offline(ctx, "alice"))

		p, err := repo.Get(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, consts.PresenceOffline, p.State)

		alive, err := liveness.Alive(ctx, "alice")
		require.NoError(t, err)
		assert.False(t, alive)

		// online + offline 各一次
		assert.Len(t, publisher.events, 2)
	})

	t.Run("offline while offline is silent", func(t *testing.T) {
		svc, _, _, publisher := newPresenceFixture()
		require.NoError(t, svc.Offline(ctx, "ghost"))
		assert.Empty(t, publisher.events)
	})
}

func TestPresenceGet(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newPresenceFixture()

	t.Run("unknown user reads offline", func(t *testing.T) {
		p, err := svc.Get(ctx, "nobody")
		require.NoError(t, err)
		assert.Equal(t, consts.PresenceOffline, p.State)
	})

	t.Run("reflects current state", func(t *testing.T) {
		require.NoError(t, svc.Online(ctx, "alice", "alice@example.com"))
		p, err := svc.Get(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, consts.PresenceOnline, p.State)
	})
}

func TestSweepStale(t *testing.T) {
	ctx := context.Background()
	svc, repo, liveness, publisher := newPresenceFixture()

	require.NoError(t, svc.Online(ctx, "alice", "alice@example.com"))
	require.NoError(t, svc.Online(ctx, "bob", "bob@example.com"))

	// alice 的心跳过期
	require.NoError(t, liveness.Clear(ctx, "alice"))

	before := len(publisher.events)
	swept, err := svc.SweepStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, swept)

	p, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, consts.PresenceOffline, p.State)

	p, err = repo.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, consts.PresenceOnline, p.State)

	// 只为被清理的用户广播
	assert.Equal(t, before+1, len(publisher.events))

	// 再跑一遍无事发生
	swept, err = svc.SweepStale(ctx)
	require.NoError(t, err)
	assert.Zero(t, swept)
}
