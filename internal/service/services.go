package service

import (
	"github.com/SeorinLee/Software-frameworks-sub000/internal/config"
	"github.com/SeorinLee/Software-frameworks-sub000/internal/repository"
	"github.com/SeorinLee/Software-frameworks-sub000/pkg/logger"
)

type Services struct {
	Auth      AuthService
	User      UserService
	Group     GroupService
	Channel   ChannelService
	Message   MessageService
	RateLimit RateLimitService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, log logger.Logger) *Services {
	return &Services{
		Auth:      NewAuthService(repos.User, cfg.JWT, log),
		User:      NewUserService(repos.User, log),
		Group:     NewGroupService(repos.Group, log),
		Channel:   NewChannelService(repos.Channel, repos.Group, log),
		Message:   NewMessageService(repos.Channel, repos.User, cfg.Upload.DefaultAvatar, log),
		RateLimit: NewRateLimitService(repos.RateLimit, log),
	}
}
