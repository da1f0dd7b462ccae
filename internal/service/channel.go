package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/SeorinLee/Software-frameworks-sub000/internal/domain"
	"github.com/SeorinLee/Software-frameworks-sub000/internal/repository"
	"github.com/SeorinLee/Software-frameworks-sub000/pkg/logger"
)

type ChannelService interface {
	Create(ctx context.Context, groupID uuid.UUID, name string, description *string, createdBy string) (*domain.Channel, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Channel, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Channel, error)
	Join(ctx context.Context, channelID uuid.UUID, username string) (*domain.Channel, error)
	Leave(ctx context.Context, channelID uuid.UUID, username string) (*domain.Channel, error)
	Messages(ctx context.Context, channelID uuid.UUID) ([]*domain.Message, error)
}

type channelService struct {
	channelRepo repository.ChannelRepository
	groupRepo   repository.GroupRepository
	log         logger.Logger
}

func NewChannelService(channelRepo repository.ChannelRepository, groupRepo repository.GroupRepository, log logger.Logger) ChannelService {
	return &channelService{
		channelRepo: channelRepo,
		groupRepo:   groupRepo,
		log:         log,
	}
}

func (s *channelService) Create(ctx context.Context, groupID uuid.UUID, name string, description *string, createdBy string) (*domain.Channel, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return nil, err
	}

	channel := &domain.Channel{
		ID:          uuid.New(),
		GroupID:     groupID,
		Name:        name,
		Description: description,
		CreatedBy:   createdBy,
		Members:     []string{},
		CreatedAt:   time.Now(),
	}

	if err := s.channelRepo.Create(ctx, channel); err != nil {
		return nil, err
	}

	return channel, nil
}

func (s *channelService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Channel, error) {
	return s.channelRepo.GetByID(ctx, id)
}

func (s *channelService) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Channel, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	return s.channelRepo.ListByGroup(ctx, groupID)
}

// Join добавляет участника (идемпотентно) и пишет запись в журнал входов.
// Журнал пополняется при каждом входе, даже повторном.
func (s *channelService) Join(ctx context.Context, channelID uuid.UUID, username string) (*domain.Channel, error) {
	if err := s.channelRepo.AddMember(ctx, channelID, username); err != nil {
		return nil, err
	}

	if err := s.channelRepo.AppendJoinLog(ctx, channelID, username); err != nil {
		// Журнал не должен блокировать вход
		s.log.Warn("Failed to append join log", "error", err, "channel_id", channelID, "username", username)
	}

	return s.channelRepo.GetByID(ctx, channelID)
}

func (s *channelService) Leave(ctx context.Context, channelID uuid.UUID, username string) (*domain.Channel, error) {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if err := s.channelRepo.RemoveMember(ctx, channelID, username); err != nil {
		return nil, err
	}

	if err := s.channelRepo.AppendLeaveLog(ctx, channelID, username); err != nil {
		s.log.Warn("Failed to append leave log", "error", err, "channel_id", channelID, "username", username)
	}

	members := make([]string, 0, len(channel.Members))
	for _, m := range channel.Members {
		if m != username {
			members = append(members, m)
		}
	}
	channel.Members = members

	return channel, nil
}

func (s *channelService) Messages(ctx context.Context, channelID uuid.UUID) ([]*domain.Message, error) {
	if _, err := s.channelRepo.GetByID(ctx, channelID); err != nil {
		return nil, err
	}
	return s.channelRepo.GetMessages(ctx, channelID)
}
