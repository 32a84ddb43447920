package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MateoL17/LinKage/internal/domain"
	"github.com/google/uuid"
)

func newTestHub() *Hub {
	hub := NewHub()
	go hub.Run()
	return hub
}

func attachClient(hub *Hub, username string) *Client {
	client := NewClient(hub, nil, username, nil)
	hub.register <- client
	return client
}

func routeBody(hub *Hub, sender, recipient, body string) {
	msg := &domain.ChatMessage{
		ID:        uuid.New(),
		Sender:    sender,
		Recipient: recipient,
		Body:      body,
		SentAt:    time.Now(),
	}
	evt, _ := NewEvent(EventTypeMessageNew, MessagePayload{ChatMessage: *msg})
	hub.RouteMessage(msg, evt)
}

func recvEvent(t *testing.T, client *Client) Event {
	t.Helper()
	select {
	case data, ok := <-client.send:
		require.True(t, ok, "send channel closed")
		var evt Event
		require.NoError(t, json.Unmarshal(data, &evt))
		return evt
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
		return Event{}
	}
}

func assertNoEvent(t *testing.T, client *Client) {
	t.Helper()
	select {
	case data, ok := <-client.send:
		if ok {
			t.Fatalf("unexpected event delivered: %s", data)
		}
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSubscribedConnectionReceivesFanOut(t *testing.T) {
	hub := newTestHub()
	luis := attachClient(hub, "luis")
	luis.Subscribe("ana")
	bystander := attachClient(hub, "carol")

	routeBody(hub, "ana", "luis", "hola")

	evt := recvEvent(t, luis)
	assert.Equal(t, EventTypeMessageNew, evt.Type)

	var payload MessagePayload
	require.NoError(t, json.Unmarshal(evt.Payload, &payload))
	assert.Equal(t, "hola", payload.Body)

	assertNoEvent(t, bystander)
}

func TestFanOutIsDirectionIndependent(t *testing.T) {
	hub := newTestHub()
	luis := attachClient(hub, "luis")
	luis.Subscribe("ana")

	routeBody(hub, "ana", "luis", "de ana")
	routeBody(hub, "luis", "ana", "de luis")

	first := recvEvent(t, luis)
	second := recvEvent(t, luis)
	assert.Equal(t, EventTypeMessageNew, first.Type)
	assert.Equal(t, EventTypeMessageNew, second.Type)
}

func TestSenderOtherTabsReceiveEcho(t *testing.T) {
	hub := newTestHub()
	// Two tabs for ana, neither subscribed to the conversation.
	tab1 := attachClient(hub, "ana")
	tab2 := attachClient(hub, "ana")
	// Recipient never joined the conversation, so no live delivery there.
	luis := attachClient(hub, "luis")

	routeBody(hub, "ana", "luis", "hola")

	recvEvent(t, tab1)
	recvEvent(t, tab2)
	assertNoEvent(t, luis)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	hub := newTestHub()
	luis := attachClient(hub, "luis")
	luis.Subscribe("ana")

	routeBody(hub, "ana", "luis", "uno")
	recvEvent(t, luis)

	luis.Unsubscribe("ana")
	routeBody(hub, "ana", "luis", "dos")
	assertNoEvent(t, luis)
}

func TestDetachDropsSubscriptions(t *testing.T) {
	hub := newTestHub()
	luis := attachClient(hub, "luis")
	luis.Subscribe("ana")

	hub.unregister <- luis

	// No fan-out may reach the detached connection, and routing after the
	// detach must not panic on its closed channel.
	routeBody(hub, "ana", "luis", "tarde")
	routeBody(hub, "ana", "luis", "aún más tarde")
	assertNoEvent(t, luis)
}

func TestDetachIsIdempotent(t *testing.T) {
	hub := newTestHub()
	luis := attachClient(hub, "luis")

	hub.unregister <- luis
	hub.unregister <- luis

	// A second detach of an unknown connection is a no-op; the hub keeps
	// serving others.
	ana := attachClient(hub, "ana")
	routeBody(hub, "ana", "luis", "sigo aquí")
	recvEvent(t, ana)
}

func TestPresencePurgedAfterLastConnection(t *testing.T) {
	hub := newTestHub()
	tab1 := attachClient(hub, "ana")
	tab2 := attachClient(hub, "ana")

	hub.unregister <- tab1
	routeBody(hub, "ana", "luis", "todavía una pestaña")
	recvEvent(t, tab2)

	hub.unregister <- tab2
	routeBody(hub, "ana", "luis", "nadie escucha")
	assertNoEvent(t, tab2)
}

func TestBroadcastToUsersIgnoresSubscriptions(t *testing.T) {
	hub := newTestHub()
	ana := attachClient(hub, "ana")
	luis := attachClient(hub, "luis")
	carol := attachClient(hub, "carol")

	rec := domain.LikeRecord{
		ID: uuid.New(), UserA: "ana", UserB: "luis",
		UserAAccepted: true, UserBAccepted: true, Active: true,
		CreatedAt: time.Now(),
	}
	evt, err := NewEvent(EventTypeMatchNew, MatchPayload{Record: rec})
	require.NoError(t, err)
	hub.BroadcastToUsers([]string{"ana", "luis"}, evt)

	assert.Equal(t, EventTypeMatchNew, recvEvent(t, ana).Type)
	assert.Equal(t, EventTypeMatchNew, recvEvent(t, luis).Type)
	assertNoEvent(t, carol)
}
