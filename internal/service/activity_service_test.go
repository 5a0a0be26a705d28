package service

import (
	"context"
	"testing"
	"time"

	"ai-chat-be/internal/repository/memory"
	"ai-chat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityService_ConsumesPublishedEvents(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	repo := memory.NewActivityRepository()
	svc := NewActivityService(pubSub, "CHAT_ACTIVITY", repo, noopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, svc.Consume(ctx))

	userId := uuid.New()
	publisher := events.NewPublisher(pubSub, "CHAT_ACTIVITY")
	require.NoError(t, publisher.Publish(ctx, events.BaseEvent{
		Type:       events.TypeSessionCreated,
		UserId:     userId.String(),
		Data:       map[string]interface{}{"session_id": uuid.NewString()},
		OccurredAt: time.Now(),
	}))
	require.NoError(t, publisher.Publish(ctx, events.BaseEvent{
		Type:       events.TypeTranscriptSaved,
		UserId:     userId.String(),
		OccurredAt: time.Now(),
	}))

	require.Eventually(t, func() bool {
		return len(svc.Recent(ctx, userId)) == 2
	}, 2*time.Second, 10*time.Millisecond)

	recent := svc.Recent(ctx, userId)
	assert.Equal(t, events.TypeSessionCreated, recent[0].Type)
	assert.Equal(t, events.TypeTranscriptSaved, recent[1].Type)
}

func TestActivityService_RecentIsPerUser(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	repo := memory.NewActivityRepository()
	svc := NewActivityService(pubSub, "CHAT_ACTIVITY", repo, noopLogger{})

	alice := uuid.New()
	repo.Append(alice.String(), events.BaseEvent{Type: events.TypeSessionCreated, UserId: alice.String()})

	assert.Len(t, svc.Recent(context.Background(), alice), 1)
	assert.Empty(t, svc.Recent(context.Background(), uuid.New()))
}

func TestActivityRepository_WindowIsBounded(t *testing.T) {
	repo := memory.NewActivityRepository()
	userId := uuid.NewString()

	for i := 0; i < 60; i++ {
		repo.Append(userId, events.BaseEvent{Type: events.TypeTranscriptSaved, UserId: userId})
	}

	assert.Len(t, repo.Recent(userId), 50)
}
