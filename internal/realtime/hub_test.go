package realtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SeorinLee/Software-frameworks-sub000/pkg/logger"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(logger.New("error"))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func newTestClient(t *testing.T, hub *Hub) *Client {
	t.Helper()
	client := newClient(hub, nil, logger.New("error"))
	hub.Register(client)
	return client
}

// drain ждет, пока hub обработает все ранее отправленные команды
func drain(hub *Hub) {
	hub.ConnectionsIn("nonexistent")
}

func TestHub_JoinRegistersPresence(t *testing.T) {
	hub := newTestHub(t)
	client := newTestClient(t, hub)

	hub.Join(client, "room1", "alice")

	ids := hub.ConnectionsIn("room1")
	require.Len(t, ids, 1)
	require.Equal(t, client.ID, ids[0])
}

func TestHub_JoinSecondChannelAbandonsFirst(t *testing.T) {
	hub := newTestHub(t)
	client := newTestClient(t, hub)

	hub.Join(client, "room1", "alice")
	hub.Join(client, "room2", "alice")

	require.Empty(t, hub.ConnectionsIn("room1"))
	require.Len(t, hub.ConnectionsIn("room2"), 1)
}

func TestHub_BroadcastFanOut(t *testing.T) {
	hub := newTestHub(t)
	a := newTestClient(t, hub)
	b := newTestClient(t, hub)
	c := newTestClient(t, hub)
	other := newTestClient(t, hub)

	hub.Join(a, "room1", "alice")
	hub.Join(b, "room1", "bob")
	hub.Join(c, "room1", "carol")
	hub.Join(other, "room2", "dave")

	payload := []byte(`{"event":"newMessage"}`)
	hub.Broadcast("room1", payload)
	drain(hub)

	for _, client := range []*Client{a, b, c} {
		require.Equal(t, payload, <-client.send)
	}
	require.Empty(t, other.send)
}

func TestHub_BroadcastExceptSkipsSender(t *testing.T) {
	hub := newTestHub(t)
	a := newTestClient(t, hub)
	b := newTestClient(t, hub)

	hub.Join(a, "room1", "alice")
	hub.Join(b, "room1", "bob")

	payload := []byte(`{"event":"offer"}`)
	hub.BroadcastExcept("room1", a, payload)
	drain(hub)

	require.Equal(t, payload, <-b.send)
	require.Empty(t, a.send)
}

func TestHub_BroadcastToEmptyChannelIsNoop(t *testing.T) {
	hub := newTestHub(t)

	hub.Broadcast("ghost", []byte("x"))
	drain(hub)
}

func TestHub_UnregisterClearsPresence(t *testing.T) {
	hub := newTestHub(t)
	a := newTestClient(t, hub)
	b := newTestClient(t, hub)

	hub.Join(a, "room1", "alice")
	hub.Join(b, "room1", "bob")

	hub.Unregister(a)
	drain(hub)

	ids := hub.ConnectionsIn("room1")
	require.Len(t, ids, 1)
	require.Equal(t, b.ID, ids[0])

	// Канал закрыт - соединение больше не является целью рассылок
	_, open := <-a.send
	require.False(t, open)
}

func TestHub_LeaveClearsPresenceOnly(t *testing.T) {
	hub := newTestHub(t)
	client := newTestClient(t, hub)

	hub.Join(client, "room1", "alice")
	hub.Leave(client)

	require.Empty(t, hub.ConnectionsIn("room1"))

	// Соединение живо и может войти в канал снова
	hub.Join(client, "room1", "alice")
	require.Len(t, hub.ConnectionsIn("room1"), 1)
}

func TestHub_SameUsernameOnTwoConnections(t *testing.T) {
	hub := newTestHub(t)
	first := newTestClient(t, hub)
	second := newTestClient(t, hub)

	hub.Join(first, "room1", "alice")
	hub.Join(second, "room1", "alice")

	// Presence отслеживается на уровне соединений, не имен
	require.Len(t, hub.ConnectionsIn("room1"), 2)
}
