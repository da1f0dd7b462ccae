package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/SeorinLee/Software-frameworks-sub000/internal/domain"
	"github.com/SeorinLee/Software-frameworks-sub000/internal/repository"
	"github.com/SeorinLee/Software-frameworks-sub000/pkg/logger"
)

type GroupService interface {
	Create(ctx context.Context, name string, description *string, createdBy string) (*domain.Group, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	List(ctx context.Context) ([]*domain.Group, error)
}

type groupService struct {
	groupRepo repository.GroupRepository
	log       logger.Logger
}

func NewGroupService(groupRepo repository.GroupRepository, log logger.Logger) GroupService {
	return &groupService{groupRepo: groupRepo, log: log}
}

func (s *groupService) Create(ctx context.Context, name string, description *string, createdBy string) (*domain.Group, error) {
	group := &domain.Group{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
	}

	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

func (s *groupService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	return s.groupRepo.GetByID(ctx, id)
}

func (s *groupService) List(ctx context.Context) ([]*domain.Group, error) {
	return s.groupRepo.List(ctx)
}
