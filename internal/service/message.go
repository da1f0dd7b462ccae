package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/SeorinLee/Software-frameworks-sub000/internal/domain"
	"github.com/SeorinLee/Software-frameworks-sub000/internal/repository"
	apperrors "github.com/SeorinLee/Software-frameworks-sub000/pkg/errors"
	"github.com/SeorinLee/Software-frameworks-sub000/pkg/logger"
)

type MessageService interface {
	Send(ctx context.Context, channelID uuid.UUID, username, body, fileURL, fileType string) (*domain.Message, error)
}

type messageService struct {
	channelRepo   repository.ChannelRepository
	userRepo      repository.UserRepository
	defaultAvatar string
	log           logger.Logger
}

func NewMessageService(channelRepo repository.ChannelRepository, userRepo repository.UserRepository, defaultAvatar string, log logger.Logger) MessageService {
	return &messageService{
		channelRepo:   channelRepo,
		userRepo:      userRepo,
		defaultAvatar: defaultAvatar,
		log:           log,
	}
}

// Send сохраняет сообщение и возвращает его с серверной меткой времени.
// Рассылку по каналу выполняет вызывающая сторона после успешного сохранения.
func (s *messageService) Send(ctx context.Context, channelID uuid.UUID, username, body, fileURL, fileType string) (*domain.Message, error) {
	if _, err := s.channelRepo.GetByID(ctx, channelID); err != nil {
		return nil, err
	}

	message := &domain.Message{
		ChannelID:         channelID,
		Username:          username,
		Body:              body,
		FileURL:           fileURL,
		FileType:          normalizeFileType(fileURL, fileType),
		ProfilePictureURL: s.resolveAvatar(ctx, username),
		CreatedAt:         time.Now(),
	}

	if err := s.channelRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}

func (s *messageService) resolveAvatar(ctx context.Context, username string) string {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			s.log.Warn("Failed to resolve sender avatar", "error", err, "username", username)
		}
		return s.defaultAvatar
	}
	if user.AvatarURL == nil || *user.AvatarURL == "" {
		return s.defaultAvatar
	}
	return *user.AvatarURL
}

// Допустимы только грубые теги image/video; все прочее сбрасывается
func normalizeFileType(fileURL, fileType string) string {
	if fileURL == "" {
		return ""
	}
	switch fileType {
	case domain.FileTypeImage, domain.FileTypeVideo:
		return fileType
	default:
		return ""
	}
}
