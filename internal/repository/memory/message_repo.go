package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/MateoL17/LinKage/internal/domain"
)

type MessageRepo struct {
	mu       sync.Mutex
	messages []domain.ChatMessage // insertion order is the tie-breaker
}

func NewMessageRepo() *MessageRepo {
	return &MessageRepo{}
}

func (r *MessageRepo) Append(_ context.Context, msg *domain.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *msg
	stored.ClientToken = ""
	r.messages = append(r.messages, stored)
	return nil
}

func (r *MessageRepo) History(_ context.Context, userX, userY string) ([]domain.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ChatMessage
	for _, msg := range r.messages {
		if (msg.Sender == userX && msg.Recipient == userY) ||
			(msg.Sender == userY && msg.Recipient == userX) {
			out = append(out, msg)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SentAt.Before(out[j].SentAt)
	})
	return out, nil
}

func (r *MessageRepo) ConversationsFor(_ context.Context, user string) ([]domain.ConversationSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	latest := make(map[string]domain.ConversationSummary)
	for _, msg := range r.messages {
		var counterpart string
		switch user {
		case msg.Sender:
			counterpart = msg.Recipient
		case msg.Recipient:
			counterpart = msg.Sender
		default:
			continue
		}
		if domain.IsGeneralRoom(counterpart) {
			continue
		}
		prev, ok := latest[counterpart]
		if !ok || !msg.SentAt.Before(prev.LastAt) {
			latest[counterpart] = domain.ConversationSummary{
				Counterpart: counterpart,
				LastBody:    msg.Body,
				LastAt:      msg.SentAt,
			}
		}
	}

	var convs []domain.ConversationSummary
	for _, conv := range latest {
		convs = append(convs, conv)
	}
	sort.SliceStable(convs, func(i, j int) bool {
		return convs[i].LastAt.After(convs[j].LastAt)
	})
	return convs, nil
}

func (r *MessageRepo) MarkConversationRead(_ context.Context, owner, counterpart string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.messages {
		if r.messages[i].Recipient == owner && r.messages[i].Sender == counterpart {
			r.messages[i].Read = true
		}
	}
	return nil
}
