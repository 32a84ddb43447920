package ws

import (
	"log"

	"github.com/MateoL17/LinKage/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyNewMessage(msg *domain.ChatMessage) {
	evt, err := NewEvent(EventTypeMessageNew, MessagePayload{ChatMessage: *msg})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.RouteMessage(msg, evt)
}

// NotifyNewMatch tells both users' live connections that their like just
// became mutual. Fired once per one-sided → mutual transition.
func (n *HubNotifier) NotifyNewMatch(rec *domain.LikeRecord) {
	evt, err := NewEvent(EventTypeMatchNew, MatchPayload{Record: *rec})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.BroadcastToUsers([]string{rec.UserA, rec.UserB}, evt)
}
