package ws

import (
	"encoding/json"
	"log"

	"github.com/MateoL17/LinKage/internal/domain"
)

// Hub owns the process-wide presence registry (username → live
// connections) and routes conversation events to the right ones. All map
// mutation happens on the Run goroutine; callers talk to it through
// channels. Construct one per process and inject it, never a package
// singleton.
type Hub struct {
	// clients holds every registered connection.
	clients map[*Client]struct{}
	// presence maps username → that user's live connections. A user may
	// hold several at once (multiple tabs); the entry is purged when the
	// last one detaches.
	presence map[string]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	deliver    chan *delivery
}

// delivery is one fan-out request: the payload goes to every connection
// subscribed to the conversation key plus every connection of the listed
// users, deduplicated by construction (each client is visited once).
type delivery struct {
	key   string // conversation key, empty for user-directed events
	users []string
	data  []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		presence:   make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan *delivery, 256),
	}
}

// Run starts the Hub's main event loop. Call this in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.attach(client)

		case client := <-h.unregister:
			h.detach(client)

		case d := <-h.deliver:
			for client := range h.clients {
				if !h.shouldReceive(client, d) {
					continue
				}
				select {
				case client.send <- d.data:
				default:
					// Client buffer full - disconnect
					h.detach(client)
				}
			}
		}
	}
}

func (h *Hub) attach(client *Client) {
	h.clients[client] = struct{}{}
	conns, ok := h.presence[client.username]
	if !ok {
		conns = make(map[*Client]struct{})
		h.presence[client.username] = conns
	}
	conns[client] = struct{}{}
	log.Printf("ws hub: %s connected (%d conns)", client.username, len(conns))
}

// detach is idempotent: a connection already removed is a no-op, so the
// read pump's deferred unregister and a slow-client eviction cannot
// double-close.
func (h *Hub) detach(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	close(client.done)

	if conns, ok := h.presence[client.username]; ok {
		delete(conns, client)
		if len(conns) == 0 {
			delete(h.presence, client.username)
		}
	}
	log.Printf("ws hub: %s disconnected (%d total)", client.username, len(h.clients))
}

func (h *Hub) shouldReceive(client *Client, d *delivery) bool {
	if d.key != "" && client.IsSubscribed(d.key) {
		return true
	}
	for _, username := range d.users {
		if client.username == username {
			return true
		}
	}
	return false
}

// RouteMessage fans a persisted message out to the union of connections
// subscribed to its conversation and the sender's own connections (so a
// second open tab sees the echo). Delivery is at-least-once per live
// connection; clients deduplicate on the message id or client token.
func (h *Hub) RouteMessage(msg *domain.ChatMessage, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("ws hub: marshal error: %v", err)
		return
	}
	h.deliver <- &delivery{
		key:   domain.ConversationKey(msg.Sender, msg.Recipient),
		users: []string{msg.Sender},
		data:  data,
	}
}

// BroadcastToUsers sends an event to every live connection of the given
// users, regardless of subscriptions.
func (h *Hub) BroadcastToUsers(usernames []string, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("ws hub: marshal error: %v", err)
		return
	}
	h.deliver <- &delivery{users: usernames, data: data}
}
