package handler

import (
	"github.com/SeorinLee/Software-frameworks-sub000/internal/config"
	"github.com/SeorinLee/Software-frameworks-sub000/internal/realtime"
	"github.com/SeorinLee/Software-frameworks-sub000/internal/service"
	"github.com/SeorinLee/Software-frameworks-sub000/pkg/logger"
)

type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	User      *UserHandler
	Group     *GroupHandler
	Channel   *ChannelHandler
	WebSocket *WebSocketHandler
}

func NewHandlers(services *service.Services, gateway *realtime.Gateway, cfg *config.Config, log logger.Logger) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(cfg),
		Auth:      NewAuthHandler(services.Auth, log),
		User:      NewUserHandler(services.User, log),
		Group:     NewGroupHandler(services.Group, services.Channel, log),
		Channel:   NewChannelHandler(services.Channel, services.Message, gateway, cfg.Upload, log),
		WebSocket: NewWebSocketHandler(gateway, log),
	}
}
