package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/MateoL17/LinKage/internal/domain"
	"github.com/MateoL17/LinKage/internal/service"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
	sendBufSize  = 256
)

// ChatSender is the slice of the chat service the connection layer needs.
type ChatSender interface {
	SendMessage(ctx context.Context, sender, recipient, body, clientToken string) (*domain.ChatMessage, error)
}

// Client represents a single WebSocket connection. Inbound events are
// handled one at a time by the read pump; the subscription set is the
// only state shared with the hub's fan-out and is guarded accordingly.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	username string
	chat     ChatSender

	// subscriptions tracks the conversation keys this connection wants
	// live messages for. One entry per open chat panel.
	subscriptions map[string]struct{}
	mu            sync.RWMutex

	send chan []byte
	done chan struct{}
}

func NewClient(hub *Hub, conn *websocket.Conn, username string, chat ChatSender) *Client {
	return &Client{
		hub:           hub,
		conn:          conn,
		username:      username,
		chat:          chat,
		subscriptions: make(map[string]struct{}),
		send:          make(chan []byte, sendBufSize),
		done:          make(chan struct{}),
	}
}

// IsSubscribed checks if this connection listens to a conversation.
func (c *Client) IsSubscribed(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.subscriptions[key]
	return ok
}

// Subscribe adds the conversation between this user and counterpart.
func (c *Client) Subscribe(counterpart string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscriptions[domain.ConversationKey(c.username, counterpart)] = struct{}{}
}

// Unsubscribe drops the subscription; absent is not an error.
func (c *Client) Unsubscribe(counterpart string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subscriptions, domain.ConversationKey(c.username, counterpart))
}

// ReadPump reads events from the WebSocket and handles them. The deferred
// unregister guarantees detach on any exit path, explicit close or not.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		var event Event
		err := wsjson.Read(context.Background(), c.conn, &event)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				log.Printf("ws: client %s disconnected", c.username)
			} else {
				log.Printf("ws: read error from %s: %v", c.username, err)
			}
			return
		}

		c.handleEvent(&event)
	}
}

// WritePump writes messages from the send channel to the WebSocket.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Write(ctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				log.Printf("ws: write error to %s: %v", c.username, err)
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				log.Printf("ws: ping error to %s: %v", c.username, err)
				return
			}

		case <-c.done:
			return
		}
	}
}

// handleEvent routes an incoming client event.
func (c *Client) handleEvent(event *Event) {
	switch event.Type {
	case EventTypeConversationSubscribe:
		var p ConversationPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil || p.Counterpart == "" {
			c.sendError("INVALID_PAYLOAD", "invalid conversation.subscribe payload")
			return
		}
		c.Subscribe(p.Counterpart)
		log.Printf("ws: %s subscribed to conversation with %s", c.username, p.Counterpart)

	case EventTypeConversationUnsubscribe:
		var p ConversationPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil || p.Counterpart == "" {
			c.sendError("INVALID_PAYLOAD", "invalid conversation.unsubscribe payload")
			return
		}
		c.Unsubscribe(p.Counterpart)
		log.Printf("ws: %s unsubscribed from conversation with %s", c.username, p.Counterpart)

	case EventTypeMessageSend:
		var p MessageSendPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			c.sendError("INVALID_PAYLOAD", "invalid message.send payload")
			return
		}
		c.handleSend(&p)

	case EventTypePing:
		c.sendPong()

	default:
		c.sendError("UNKNOWN_EVENT", "unknown event type: "+event.Type)
	}
}

// handleSend persists and fans out one inbound message. The hub notifier
// delivers the echo back to this connection too, so no direct reply is
// needed on success.
func (c *Client) handleSend(p *MessageSendPayload) {
	_, err := c.chat.SendMessage(context.Background(), c.username, p.Recipient, p.Body, p.ClientToken)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrEmptyMessage):
		c.sendError("EMPTY_MESSAGE", "Message body cannot be empty")
	case errors.Is(err, service.ErrRecipientUnknown):
		c.sendError("RECIPIENT_UNKNOWN", "Recipient not found")
	default:
		log.Printf("ws: send from %s failed: %v", c.username, err)
		c.sendError("INTERNAL", "Could not send message")
	}
}

func (c *Client) sendPong() {
	data, _ := json.Marshal(Event{Type: EventTypePong})
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) sendError(code, message string) {
	evt, err := NewEvent(EventTypeError, ErrorPayload{Code: code, Message: message})
	if err != nil {
		return
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
