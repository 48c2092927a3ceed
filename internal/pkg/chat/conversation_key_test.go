package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationKey(t *testing.T) {
	t.Run("lexicographic order", func(t *testing.T) {
		key, err := ConversationKey("alice", "bob")
		require.NoError(t, err)
		assert.Equal(t, "alice_bob", key)

		key, err = ConversationKey("bob", "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice_bob", key)
	})

	t.Run("symmetric for any pair", func(t *testing.T) {
		k1, err := ConversationKey("u-9f2", "u-0a1")
		require.NoError(t, err)
		k2, err := ConversationKey("u-0a1", "u-9f2")
		require.NoError(t, err)
		assert.Equal(t, k1, k2)
	})

	t.Run("empty participant", func(t *testing.T) {
		_, err := ConversationKey("", "bob")
		assert.ErrorIs(t, err, ErrInvalidParticipants)

		_, err = ConversationKey("alice", "")
		assert.ErrorIs(t, err, ErrInvalidParticipants)
	})

	t.Run("self conversation", func(t *testing.T) {
		_, err := ConversationKey("alice", "alice")
		assert.ErrorIs(t, err, ErrInvalidParticipants)
	})
}
