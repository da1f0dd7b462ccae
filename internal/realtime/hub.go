package realtime

import (
	"context"

	"github.com/google/uuid"

	"github.com/SeorinLee/Software-frameworks-sub000/pkg/logger"
)

// presenceEntry - живая привязка соединения к каналу.
// Соединение состоит максимум в одном канале; повторный вход перезаписывает привязку.
type presenceEntry struct {
	channelID string
	username  string
}

type joinRequest struct {
	client    *Client
	channelID string
	username  string
}

type broadcastRequest struct {
	channelID string
	payload   []byte
	exclude   *Client
}

type membersQuery struct {
	channelID string
	reply     chan []uuid.UUID
}

// Hub владеет всем presence-состоянием. Все мутации выполняются
// единственной горутиной Run, поэтому блокировки не нужны.
type Hub struct {
	log logger.Logger

	register   chan *Client
	unregister chan *Client
	joins      chan joinRequest
	leaves     chan *Client
	broadcasts chan broadcastRequest
	queries    chan membersQuery

	clients  map[uuid.UUID]*Client
	presence map[uuid.UUID]presenceEntry
	channels map[string]map[*Client]struct{}
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		log:        log,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		joins:      make(chan joinRequest),
		leaves:     make(chan *Client),
		broadcasts: make(chan broadcastRequest),
		queries:    make(chan membersQuery),
		clients:    make(map[uuid.UUID]*Client),
		presence:   make(map[uuid.UUID]presenceEntry),
		channels:   make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.clients[client.ID] = client
		case client := <-h.unregister:
			h.removeClient(client)
		case req := <-h.joins:
			h.handleJoin(req)
		case client := <-h.leaves:
			h.detach(client)
		case req := <-h.broadcasts:
			h.handleBroadcast(req)
		case q := <-h.queries:
			q.reply <- h.connectionsIn(q.channelID)
		}
	}
}

func (h *Hub) Register(client *Client)   { h.register <- client }
func (h *Hub) Unregister(client *Client) { h.unregister <- client }

// Join регистрирует привязку соединения к каналу. Сохраненное членство
// к этому моменту уже должно быть записано вызывающей стороной.
func (h *Hub) Join(client *Client, channelID, username string) {
	h.joins <- joinRequest{client: client, channelID: channelID, username: username}
}

// Leave снимает привязку соединения, не трогая сохраненное членство.
func (h *Hub) Leave(client *Client) {
	h.leaves <- client
}

// Broadcast отправляет payload всем соединениям канала, включая отправителя.
func (h *Hub) Broadcast(channelID string, payload []byte) {
	h.broadcasts <- broadcastRequest{channelID: channelID, payload: payload}
}

// BroadcastExcept отправляет payload всем соединениям канала, кроме sender.
func (h *Hub) BroadcastExcept(channelID string, sender *Client, payload []byte) {
	h.broadcasts <- broadcastRequest{channelID: channelID, payload: payload, exclude: sender}
}

// ConnectionsIn возвращает идентификаторы соединений, находящихся в канале.
func (h *Hub) ConnectionsIn(channelID string) []uuid.UUID {
	reply := make(chan []uuid.UUID, 1)
	h.queries <- membersQuery{channelID: channelID, reply: reply}
	return <-reply
}

func (h *Hub) handleJoin(req joinRequest) {
	if _, ok := h.clients[req.client.ID]; !ok {
		// Соединение уже закрыто, привязывать нечего
		return
	}

	// Вход в другой канал неявно снимает предыдущую привязку
	h.detach(req.client)

	h.presence[req.client.ID] = presenceEntry{channelID: req.channelID, username: req.username}
	if h.channels[req.channelID] == nil {
		h.channels[req.channelID] = make(map[*Client]struct{})
	}
	h.channels[req.channelID][req.client] = struct{}{}
}

func (h *Hub) handleBroadcast(req broadcastRequest) {
	for client := range h.channels[req.channelID] {
		if client == req.exclude {
			continue
		}
		select {
		case client.send <- req.payload:
		default:
			// Переполненный буфер означает мертвое или безнадежно отставшее
			// соединение - отключаем его
			h.log.Warn("Dropping slow connection", "conn_id", client.ID)
			h.removeClient(client)
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	h.detach(client)
	delete(h.clients, client.ID)
	close(client.send)
}

func (h *Hub) detach(client *Client) {
	entry, ok := h.presence[client.ID]
	if !ok {
		return
	}
	delete(h.presence, client.ID)
	if set := h.channels[entry.channelID]; set != nil {
		delete(set, client)
		if len(set) == 0 {
			delete(h.channels, entry.channelID)
		}
	}
}

func (h *Hub) connectionsIn(channelID string) []uuid.UUID {
	set := h.channels[channelID]
	ids := make([]uuid.UUID, 0, len(set))
	for client := range set {
		ids = append(ids, client.ID)
	}
	return ids
}
