package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MateoL17/LinKage/internal/domain"
	"github.com/MateoL17/LinKage/internal/repository/memory"
	"github.com/MateoL17/LinKage/internal/service"
)

func newChatService(t *testing.T, usernames ...string) (*service.ChatService, *fakeNotifier) {
	t.Helper()
	userRepo := memory.NewUserRepo()
	seedUsers(t, userRepo, usernames...)
	svc := service.NewChatService(memory.NewMessageRepo(), userRepo)
	notifier := &fakeNotifier{}
	svc.SetNotifier(notifier)
	return svc, notifier
}

func TestSendMessageEmptyBody(t *testing.T) {
	ctx := context.Background()
	svc, notifier := newChatService(t, "ana", "luis")

	for _, body := range []string{"", "   ", "\n\t "} {
		_, err := svc.SendMessage(ctx, "ana", "luis", body, "")
		assert.ErrorIs(t, err, service.ErrEmptyMessage)
	}

	history, err := svc.History(ctx, "ana", "luis")
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Empty(t, notifier.messages)
}

func TestSendMessageUnknownRecipient(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChatService(t, "ana")

	_, err := svc.SendMessage(ctx, "ana", "desconocido", "hi", "")
	assert.ErrorIs(t, err, service.ErrRecipientUnknown)

	history, err := svc.History(ctx, "ana", "desconocido")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSendMessageGeneralRoomSkipsExistenceCheck(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChatService(t, "ana")

	msg, err := svc.SendMessage(ctx, "ana", domain.GeneralRoom, "hola a todos", "")
	require.NoError(t, err)
	assert.Equal(t, domain.GeneralRoom, msg.Recipient)
}

func TestSendMessageEchoesClientToken(t *testing.T) {
	ctx := context.Background()
	svc, notifier := newChatService(t, "ana", "luis")

	msg, err := svc.SendMessage(ctx, "ana", "luis", "hola", "tok-123")
	require.NoError(t, err)
	assert.NotEqual(t, "", msg.ID.String())
	assert.Equal(t, "tok-123", msg.ClientToken)
	assert.Equal(t, "img/ana.png", msg.SenderPhoto)

	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "tok-123", notifier.messages[0].ClientToken)

	// The token is a wire-level echo, not part of the stored record.
	history, err := svc.History(ctx, "ana", "luis")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Empty(t, history[0].ClientToken)
}

func TestHistorySymmetryAndOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChatService(t, "ana", "luis", "carol")

	bodies := []string{"hola", "qué tal", "bien y tú", "genial"}
	senders := []string{"ana", "luis", "ana", "luis"}
	for i, body := range bodies {
		recipient := "luis"
		if senders[i] == "luis" {
			recipient = "ana"
		}
		_, err := svc.SendMessage(ctx, senders[i], recipient, body, "")
		require.NoError(t, err)
	}
	// Noise from another conversation must not leak in.
	_, err := svc.SendMessage(ctx, "carol", "ana", "hey", "")
	require.NoError(t, err)

	forward, err := svc.History(ctx, "ana", "luis")
	require.NoError(t, err)
	backward, err := svc.History(ctx, "luis", "ana")
	require.NoError(t, err)

	require.Len(t, forward, len(bodies))
	assert.Equal(t, forward, backward)

	for i := range forward {
		assert.Equal(t, bodies[i], forward[i].Body)
		if i > 0 {
			assert.False(t, forward[i].SentAt.Before(forward[i-1].SentAt))
		}
	}
}

func TestConversations(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChatService(t, "ana", "luis", "carol")

	_, err := svc.SendMessage(ctx, "ana", "luis", "primero", "")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, "luis", "ana", "último con luis", "")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, "carol", "ana", "hola ana", "")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, "ana", domain.GeneralRoom, "para todos", "")
	require.NoError(t, err)

	convs, err := svc.Conversations(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, convs, 2)

	// Newest conversation first, general room excluded.
	assert.Equal(t, "carol", convs[0].Counterpart)
	assert.Equal(t, "hola ana", convs[0].LastBody)
	assert.Equal(t, "luis", convs[1].Counterpart)
	assert.Equal(t, "último con luis", convs[1].LastBody)
	assert.Equal(t, "img/luis.png", convs[1].CounterpartPhoto)
}

func TestMarkRead(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChatService(t, "ana", "luis")

	_, err := svc.SendMessage(ctx, "luis", "ana", "léeme", "")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, "ana", "luis", "ya voy", "")
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(ctx, "ana", "luis"))

	history, err := svc.History(ctx, "ana", "luis")
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, msg := range history {
		if msg.Recipient == "ana" {
			assert.True(t, msg.Read)
		} else {
			// Only the caller's received messages are flagged.
			assert.False(t, msg.Read)
		}
	}
}
