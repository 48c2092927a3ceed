package service

import (
	"Evergreen/internal/pkg/consts"
	mongodb "Evergreen/internal/pkg/mongo"
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedNotifications(t *testing.T, svc NotificationService, recipient string, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		err := svc.Notify(context.Background(), &mongodb.Notification{
			RecipientUID: recipient,
			SenderUID:    "sender",
			SenderName:   "Sender",
			Type:         consts.NotifyTypeMessage,
			Preview:      "ping " + strconv.Itoa(i),
			ConvKey:      "recipient_sender",
		})
		require.NoError(t, err)
	}
}

func TestNotify(t *testing.T) {
	ctx := context.Background()
	repo := newFakeNotificationRepo()
	publisher := &fakePublisher{}
	svc := NewNotificationService(repo, publisher)

	err := svc.Notify(ctx, &mongodb.Notification{
		RecipientUID: "bob",
		SenderUID:    "alice",
		SenderName:   "Alice",
		Type:         consts.NotifyTypeMessage,
		Preview:      "hello",
		ConvKey:      "alice_bob",
		Read:         true, // 消费端不信任上游的读标记
	})
	require.NoError(t, err)

	stored, err := repo.List(ctx, "bob", 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.False(t, stored[0].Read)
	assert.False(t, stored[0].CreatedAt.IsZero())

	require.Len(t, publisher.events, 1)
	assert.Equal(t, consts.NotifyChannelKey+"bob", publisher.events[0].channel)
}

func TestNotificationList(t *testing.T) {
	ctx := context.Background()

	t.Run("viewing marks each read", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		svc := NewNotificationService(repo, &fakePublisher{})
		seedNotifications(t, svc, "bob", 3)

		list, err := svc.List(ctx, "bob")
		require.NoError(t, err)
		require.Len(t, list, 3)

		unread, err := repo.ListUnread(ctx, "bob", consts.BadgeLimit)
		require.NoError(t, err)
		assert.Empty(t, unread)
	})

	t.Run("second view already read", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		svc := NewNotificationService(repo, &fakePublisher{})
		seedNotifications(t, svc, "bob", 2)

		_, err := svc.List(ctx, "bob")
		require.NoError(t, err)
		list, err := svc.List(ctx, "bob")
		require.NoError(t, err)
		for _, n := range list {
			assert.True(t, n.Read)
		}
	})
}

func TestBadge(t *testing.T) {
	ctx := context.Background()

	t.Run("count equals unread size", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		svc := NewNotificationService(repo, &fakePublisher{})
		seedNotifications(t, svc, "bob", 4)

		badge, err := svc.Badge(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, 4, badge.Count)
		assert.Len(t, badge.Items, 4)
	})

	t.Run("capped at limit", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		svc := NewNotificationService(repo, &fakePublisher{})
		seedNotifications(t, svc, "bob", consts.BadgeLimit+5)

		badge, err := svc.Badge(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, consts.BadgeLimit, badge.Count)
	})
}

func TestDismiss(t *testing.T) {
	ctx := context.Background()
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo, &fakePublisher{})
	seedNotifications(t, svc, "bob", 1)

	stored, err := repo.List(ctx, "bob", 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	id := stored[0].ID.Hex()

	t.Run("removes the doc", func(t *testing.T) {
		require.NoError(t, svc.Dismiss(ctx, "bob", id))
		left, err := repo.List(ctx, "bob", 10)
		require.NoError(t, err)
		assert.Empty(t, left)
	})

	t.Run("missing doc is a no-op", func(t *testing.T) {
		assert.NoError(t, svc.Dismiss(ctx, "bob", id))
		assert.NoError(t, svc.Dismiss(ctx, "bob", primitive.NewObjectID().Hex()))
	})

	t.Run("malformed id rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.Dismiss(ctx, "bob", "not-an-object-id"), ErrParamInvalid)
	})
}

func TestClearRead(t *testing.T) {
	ctx := context.Background()
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo, &fakePublisher{})
	seedNotifications(t, svc, "bob", 3)

	// 查看后全部已读
	_, err := svc.List(ctx, "bob")
	require.NoError(t, err)

	// 再来一条未读
	seedNotifications(t, svc, "bob", 1)

	deleted, err := svc.ClearRead(ctx, "bob")
	require.NoError(t, err)
	assert.EqualValues(t, 3, deleted)

	left, err := repo.List(ctx, "bob", 10)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.False(t, left[0].Read)
}
