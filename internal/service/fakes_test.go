package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/SeorinLee/Software-frameworks-sub000/internal/domain"
	apperrors "github.com/SeorinLee/Software-frameworks-sub000/pkg/errors"
)

// Fake-репозитории повторяют семантику SQL-слоя: идемпотентное членство,
// безусловные журналы, append-only сообщения

type fakeChannelRepo struct {
	channels map[uuid.UUID]*domain.Channel
	members  map[uuid.UUID][]string
	joinLog  map[uuid.UUID][]string
	leaveLog map[uuid.UUID][]string
	messages map[uuid.UUID][]*domain.Message
	nextID   int64
}

func newFakeChannelRepo(ids ...uuid.UUID) *fakeChannelRepo {
	repo := &fakeChannelRepo{
		channels: make(map[uuid.UUID]*domain.Channel),
		members:  make(map[uuid.UUID][]string),
		joinLog:  make(map[uuid.UUID][]string),
		leaveLog: make(map[uuid.UUID][]string),
		messages: make(map[uuid.UUID][]*domain.Message),
	}
	for _, id := range ids {
		repo.channels[id] = &domain.Channel{ID: id, Name: "general"}
	}
	return repo
}

func (r *fakeChannelRepo) Create(ctx context.Context, channel *domain.Channel) error {
	r.channels[channel.ID] = channel
	return nil
}

func (r *fakeChannelRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Channel, error) {
	ch, ok := r.channels[id]
	if !ok {
		return nil, apperrors.ErrChannelNotFound
	}
	out := *ch
	out.Members = append([]string{}, r.members[id]...)
	return &out, nil
}

func (r *fakeChannelRepo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Channel, error) {
	var channels []*domain.Channel
	for _, ch := range r.channels {
		if ch.GroupID == groupID {
			channels = append(channels, ch)
		}
	}
	return channels, nil
}

func (r *fakeChannelRepo) AddMember(ctx context.Context, channelID uuid.UUID, username string) error {
	if _, ok := r.channels[channelID]; !ok {
		return apperrors.ErrChannelNotFound
	}
	for _, m := range r.members[channelID] {
		if m == username {
			return nil
		}
	}
	r.members[channelID] = append(r.members[channelID], username)
	return nil
}

func (r *fakeChannelRepo) RemoveMember(ctx context.Context, channelID uuid.UUID, username string) error {
	members := r.members[channelID]
	for i, m := range members {
		if m == username {
			r.members[channelID] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeChannelRepo) AppendJoinLog(ctx context.Context, channelID uuid.UUID, username string) error {
	r.joinLog[channelID] = append(r.joinLog[channelID], username)
	return nil
}

func (r *fakeChannelRepo) AppendLeaveLog(ctx context.Context, channelID uuid.UUID, username string) error {
	r.leaveLog[channelID] = append(r.leaveLog[channelID], username)
	return nil
}

func (r *fakeChannelRepo) CreateMessage(ctx context.Context, message *domain.Message) error {
	if _, ok := r.channels[message.ChannelID]; !ok {
		return apperrors.ErrChannelNotFound
	}
	r.nextID++
	message.ID = r.nextID
	r.messages[message.ChannelID] = append(r.messages[message.ChannelID], message)
	return nil
}

func (r *fakeChannelRepo) GetMessages(ctx context.Context, channelID uuid.UUID) ([]*domain.Message, error) {
	return append([]*domain.Message{}, r.messages[channelID]...), nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		repo.users[u.Username] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if _, ok := r.users[user.Username]; ok {
		return apperrors.ErrUserAlreadyExists
	}
	r.users[user.Username] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := r.users[user.Username]; !ok {
		return apperrors.ErrUserNotFound
	}
	r.users[user.Username] = user
	return nil
}

type fakeGroupRepo struct {
	groups map[uuid.UUID]*domain.Group
}

func newFakeGroupRepo(ids ...uuid.UUID) *fakeGroupRepo {
	repo := &fakeGroupRepo{groups: make(map[uuid.UUID]*domain.Group)}
	for _, id := range ids {
		repo.groups[id] = &domain.Group{ID: id, Name: "team"}
	}
	return repo
}

func (r *fakeGroupRepo) Create(ctx context.Context, group *domain.Group) error {
	r.groups[group.ID] = group
	return nil
}

func (r *fakeGroupRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	g, ok := r.groups[id]
	if !ok {
		return nil, apperrors.ErrGroupNotFound
	}
	return g, nil
}

func (r *fakeGroupRepo) List(ctx context.Context) ([]*domain.Group, error) {
	var groups []*domain.Group
	for _, g := range r.groups {
		groups = append(groups, g)
	}
	return groups, nil
}
