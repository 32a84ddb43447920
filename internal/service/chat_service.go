package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MateoL17/LinKage/internal/domain"
	"github.com/MateoL17/LinKage/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrEmptyMessage     = errors.New("message body cannot be empty")
	ErrRecipientUnknown = errors.New("recipient not found")
)

// Notifier fans persisted events out to live connections. Implemented by
// the WebSocket hub; nil means no live delivery (messages stay queryable
// through history).
type Notifier interface {
	NotifyNewMessage(msg *domain.ChatMessage)
	NotifyNewMatch(rec *domain.LikeRecord)
}

// ChatService is the boundary callers use to send and read messages.
// Persistence happens before fan-out: an offline recipient just misses
// the live event, never the message.
type ChatService struct {
	store    repository.MessageStore
	userRepo repository.UserRepository
	notifier Notifier
}

func NewChatService(store repository.MessageStore, userRepo repository.UserRepository) *ChatService {
	return &ChatService{
		store:    store,
		userRepo: userRepo,
	}
}

func (s *ChatService) SetNotifier(n Notifier) {
	s.notifier = n
}

// SendMessage validates, persists and fans out one message. clientToken
// is echoed on the returned message so optimistic UI entries reconcile by
// exact key; it is never stored.
func (s *ChatService) SendMessage(ctx context.Context, sender, recipient, body, clientToken string) (*domain.ChatMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}

	if !domain.IsGeneralRoom(recipient) {
		user, err := s.userRepo.GetByUsername(ctx, recipient)
		if err != nil {
			return nil, fmt.Errorf("looking up recipient: %w", err)
		}
		if user == nil {
			return nil, ErrRecipientUnknown
		}
	}

	msg := &domain.ChatMessage{
		ID:        uuid.New(),
		Sender:    sender,
		Recipient: recipient,
		Body:      body,
		SentAt:    time.Now(),
	}

	if err := s.store.Append(ctx, msg); err != nil {
		return nil, fmt.Errorf("storing message: %w", err)
	}

	msg.ClientToken = clientToken
	if sndr, err := s.userRepo.GetByUsername(ctx, sender); err == nil && sndr != nil {
		msg.SenderPhoto = sndr.Photo
	}

	if s.notifier != nil {
		s.notifier.NotifyNewMessage(msg)
	}

	return msg, nil
}

// History returns the full conversation between the two users, oldest
// first, with sender photos attached.
func (s *ChatService) History(ctx context.Context, userX, userY string) ([]domain.ChatMessage, error) {
	messages, err := s.store.History(ctx, userX, userY)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.ChatMessage{}
	}

	photos := map[string]string{}
	for _, username := range []string{userX, userY} {
		if user, err := s.userRepo.GetByUsername(ctx, username); err == nil && user != nil {
			photos[username] = user.Photo
		}
	}
	for i := range messages {
		messages[i].SenderPhoto = photos[messages[i].Sender]
	}
	return messages, nil
}

// Conversations returns user's conversation list, newest first, enriched
// with the counterpart's profile.
func (s *ChatService) Conversations(ctx context.Context, user string) ([]domain.ConversationSummary, error) {
	convs, err := s.store.ConversationsFor(ctx, user)
	if err != nil {
		return nil, err
	}
	if convs == nil {
		convs = []domain.ConversationSummary{}
	}

	for i := range convs {
		counterpart, err := s.userRepo.GetByUsername(ctx, convs[i].Counterpart)
		if err != nil || counterpart == nil {
			continue
		}
		convs[i].CounterpartPhoto = counterpart.Photo
		convs[i].CounterpartDisplayName = counterpart.DisplayName
	}
	return convs, nil
}

// MarkRead flags every message user received from counterpart as read.
func (s *ChatService) MarkRead(ctx context.Context, user, counterpart string) error {
	return s.store.MarkConversationRead(ctx, user, counterpart)
}
