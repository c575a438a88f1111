package memory

import (
	"context"
	"testing"
	"time"

	"telemedicine-assistant-be/internal/entity"
	"telemedicine-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAssignsIncreasingSeq(t *testing.T) {
	repo := NewConversationMessageRepository()
	ctx := context.Background()
	userId := uuid.New()

	first := &entity.ConversationMessage{UserId: userId, Content: "a", IsUser: true}
	second := &entity.ConversationMessage{UserId: userId, Content: "b", IsUser: false}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.Greater(t, second.Seq, first.Seq)
}

func TestFindAllOrdersBySeqWithEqualTimestamps(t *testing.T) {
	repo := NewConversationMessageRepository()
	ctx := context.Background()
	userId := uuid.New()
	now := time.Now()

	// All four share the same timestamp, as two exchanges completing within
	// one clock tick would. Only the sequence can preserve insertion order.
	contents := []string{"user 1", "bot 1", "user 2", "bot 2"}
	for i, content := range contents {
		require.NoError(t, repo.Create(ctx, &entity.ConversationMessage{
			UserId:    userId,
			Content:   content,
			IsUser:    i%2 == 0,
			CreatedAt: now,
		}))
	}

	messages, err := repo.FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "seq", Desc: false},
	)
	require.NoError(t, err)
	require.Len(t, messages, 4)
	for i, content := range contents {
		assert.Equal(t, content, messages[i].Content)
	}
}
