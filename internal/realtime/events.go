package realtime

import (
	"encoding/json"
)

// Входящие события
const (
	EventJoinChannel  = "joinChannel"
	EventLeaveChannel = "leaveChannel"
	EventSendMessage  = "sendMessage"
	EventOffer        = "offer"
	EventAnswer       = "answer"
	EventCandidate    = "candidate"
	EventEndCall      = "endCall"
)

// Исходящие события
const (
	EventMembersUpdate = "membersUpdate"
	EventNewMessage    = "newMessage"
)

// Envelope - общий конверт для всех событий websocket-канала
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type JoinPayload struct {
	ChannelID string `json:"channelId"`
	Username  string `json:"username"`
}

type LeavePayload struct {
	ChannelID string `json:"channelId"`
	Username  string `json:"username"`
}

type SendMessagePayload struct {
	ChannelID string `json:"channelId"`
	Username  string `json:"username"`
	Message   string `json:"message"`
	FileURL   string `json:"fileUrl"`
	FileType  string `json:"fileType"`
}

// channelRef вытаскивает из сигнального payload только идентификатор канала,
// остальное содержимое ретранслируется как есть
type channelRef struct {
	ChannelID string `json:"channelId"`
}

func DecodeEnvelope(raw []byte) (*Envelope, error) {
	env := &Envelope{}
	if err := json.Unmarshal(raw, env); err != nil {
		return nil, err
	}
	return env, nil
}

func Encode(event string, data any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&Envelope{Event: event, Data: payload})
}
