package realtime

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/SeorinLee/Software-frameworks-sub000/internal/domain"
	"github.com/SeorinLee/Software-frameworks-sub000/internal/service"
	"github.com/SeorinLee/Software-frameworks-sub000/pkg/logger"
)

// Gateway диспетчеризует события websocket-соединений: вход/выход из каналов,
// сообщения чата и сигнальные payload-ы звонков
type Gateway struct {
	hub      *Hub
	channels service.ChannelService
	messages service.MessageService
	log      logger.Logger
}

func NewGateway(hub *Hub, channels service.ChannelService, messages service.MessageService, log logger.Logger) *Gateway {
	return &Gateway{
		hub:      hub,
		channels: channels,
		messages: messages,
		log:      log,
	}
}

// HandleConnection обслуживает соединение до его разрыва
func (g *Gateway) HandleConnection(conn *websocket.Conn) {
	client := newClient(g.hub, conn, g.log)
	g.hub.Register(client)
	g.log.Debug("Connection registered", "conn_id", client.ID)

	go client.writePump()
	client.readPump(g.dispatch)
}

func (g *Gateway) dispatch(client *Client, raw []byte) {
	// Ошибка обработчика не должна разрывать соединение
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("Event handler panicked", "conn_id", client.ID, "panic", r)
		}
	}()

	env, err := DecodeEnvelope(raw)
	if err != nil {
		g.log.Debug("Dropping malformed frame", "conn_id", client.ID, "error", err)
		return
	}

	switch env.Event {
	case EventJoinChannel:
		g.handleJoin(client, env.Data)
	case EventLeaveChannel:
		g.handleLeave(client, env.Data)
	case EventSendMessage:
		g.handleSendMessage(client, env.Data)
	case EventOffer, EventAnswer, EventCandidate, EventEndCall:
		g.handleSignal(client, env.Event, env.Data, raw)
	default:
		g.log.Debug("Ignoring unknown event", "conn_id", client.ID, "event", env.Event)
	}
}

func (g *Gateway) handleJoin(client *Client, data json.RawMessage) {
	var p JoinPayload
	_ = json.Unmarshal(data, &p)

	channelID, err := uuid.Parse(p.ChannelID)
	if err != nil || p.Username == "" {
		g.log.Debug("Invalid join payload", "conn_id", client.ID, "channel_id", p.ChannelID)
		return
	}

	channel, err := g.channels.Join(context.Background(), channelID, p.Username)
	if err != nil {
		// Несуществующий канал или отказ хранилища: вход молча не состоялся
		g.log.Warn("Join not persisted", "error", err, "channel_id", p.ChannelID, "username", p.Username)
		return
	}

	g.hub.Join(client, p.ChannelID, p.Username)
	g.broadcastMembers(p.ChannelID, channel.Members)
}

func (g *Gateway) handleLeave(client *Client, data json.RawMessage) {
	var p LeavePayload
	_ = json.Unmarshal(data, &p)

	channelID, err := uuid.Parse(p.ChannelID)
	if err != nil || p.Username == "" {
		g.log.Debug("Invalid leave payload", "conn_id", client.ID, "channel_id", p.ChannelID)
		return
	}

	channel, err := g.channels.Leave(context.Background(), channelID, p.Username)
	if err != nil {
		g.log.Warn("Leave not persisted", "error", err, "channel_id", p.ChannelID, "username", p.Username)
		return
	}

	g.hub.Leave(client)
	g.broadcastMembers(p.ChannelID, channel.Members)
}

func (g *Gateway) handleSendMessage(client *Client, data json.RawMessage) {
	var p SendMessagePayload
	_ = json.Unmarshal(data, &p)

	channelID, err := uuid.Parse(p.ChannelID)
	if err != nil || p.Username == "" {
		g.log.Debug("Invalid message payload", "conn_id", client.ID, "channel_id", p.ChannelID)
		return
	}

	message, err := g.messages.Send(context.Background(), channelID, p.Username, p.Message, p.FileURL, p.FileType)
	if err != nil {
		// Отправитель не получает ошибку: отсутствие рассылки и есть весь сигнал
		g.log.Warn("Message not persisted", "error", err, "channel_id", p.ChannelID, "username", p.Username)
		return
	}

	g.BroadcastMessage(message)
}

// handleSignal ретранслирует сигнальный кадр без изменений всем остальным
// соединениям канала. Содержимое payload не интерпретируется.
func (g *Gateway) handleSignal(client *Client, event string, data json.RawMessage, raw []byte) {
	var ref channelRef
	_ = json.Unmarshal(data, &ref)

	if ref.ChannelID == "" {
		g.log.Debug("Signal without channel id", "conn_id", client.ID, "event", event)
		return
	}

	g.hub.BroadcastExcept(ref.ChannelID, client, raw)
}

// BroadcastMessage рассылает сохраненное сообщение всему каналу, включая
// отправителя. Используется и socket-путем, и HTTP-загрузкой файлов.
func (g *Gateway) BroadcastMessage(message *domain.Message) {
	payload, err := Encode(EventNewMessage, message)
	if err != nil {
		g.log.Error("Failed to encode message event", "error", err)
		return
	}
	g.hub.Broadcast(message.ChannelID.String(), payload)
}

func (g *Gateway) broadcastMembers(channelID string, members []string) {
	payload, err := Encode(EventMembersUpdate, members)
	if err != nil {
		g.log.Error("Failed to encode members event", "error", err)
		return
	}
	g.hub.Broadcast(channelID, payload)
}
