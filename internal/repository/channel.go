package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SeorinLee/Software-frameworks-sub000/internal/domain"
	apperrors "github.com/SeorinLee/Software-frameworks-sub000/pkg/errors"
	"github.com/SeorinLee/Software-frameworks-sub000/pkg/logger"
)

type ChannelRepository interface {
	Create(ctx context.Context, channel *domain.Channel) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Channel, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Channel, error)
	AddMember(ctx context.Context, channelID uuid.UUID, username string) error
	RemoveMember(ctx context.Context, channelID uuid.UUID, username string) error
	AppendJoinLog(ctx context.Context, channelID uuid.UUID, username string) error
	AppendLeaveLog(ctx context.Context, channelID uuid.UUID, username string) error
	CreateMessage(ctx context.Context, message *domain.Message) error
	GetMessages(ctx context.Context, channelID uuid.UUID) ([]*domain.Message, error)
}

type channelRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewChannelRepository(db *pgxpool.Pool, log logger.Logger) ChannelRepository {
	return &channelRepository{db: db, log: log}
}

func (r *channelRepository) Create(ctx context.Context, channel *domain.Channel) error {
	query := `
		INSERT INTO channels (id, group_id, name, description, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		channel.ID, channel.GroupID, channel.Name, channel.Description,
		channel.CreatedBy, channel.CreatedAt,
	).Scan(&channel.CreatedAt)

	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrGroupNotFound
		}
		r.log.Error("Failed to create channel", "error", err)
		return err
	}

	return nil
}

func (r *channelRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Channel, error) {
	query := `
		SELECT id, group_id, name, description, created_by, created_at
		FROM channels
		WHERE id = $1
	`

	channel := &domain.Channel{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&channel.ID, &channel.GroupID, &channel.Name, &channel.Description,
		&channel.CreatedBy, &channel.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChannelNotFound
		}
		r.log.Error("Failed to get channel by ID", "error", err)
		return nil, err
	}

	members, err := r.getMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	channel.Members = members

	return channel, nil
}

func (r *channelRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Channel, error) {
	query := `
		SELECT id, group_id, name, description, created_by, created_at
		FROM channels
		WHERE group_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, groupID)
	if err != nil {
		r.log.Error("Failed to list channels", "error", err)
		return nil, err
	}
	defer rows.Close()

	var channels []*domain.Channel
	for rows.Next() {
		channel := &domain.Channel{}
		err := rows.Scan(
			&channel.ID, &channel.GroupID, &channel.Name, &channel.Description,
			&channel.CreatedBy, &channel.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan channel", "error", err)
			return nil, err
		}
		channels = append(channels, channel)
	}

	return channels, nil
}

// getMembers возвращает участников в порядке первого входа
func (r *channelRepository) getMembers(ctx context.Context, channelID uuid.UUID) ([]string, error) {
	query := `
		SELECT username
		FROM channel_members
		WHERE channel_id = $1
		ORDER BY joined_at ASC, username ASC
	`

	rows, err := r.db.Query(ctx, query, channelID)
	if err != nil {
		r.log.Error("Failed to get channel members", "error", err)
		return nil, err
	}
	defer rows.Close()

	members := []string{}
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			r.log.Error("Failed to scan member", "error", err)
			return nil, err
		}
		members = append(members, username)
	}

	return members, nil
}

func (r *channelRepository) AddMember(ctx context.Context, channelID uuid.UUID, username string) error {
	// ON CONFLICT DO NOTHING дает идемпотентность повторного входа
	query := `
		INSERT INTO channel_members (channel_id, username, joined_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (channel_id, username) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, channelID, username)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrChannelNotFound
		}
		r.log.Error("Failed to add channel member", "error", err, "channel_id", channelID)
		return err
	}

	return nil
}

func (r *channelRepository) RemoveMember(ctx context.Context, channelID uuid.UUID, username string) error {
	// Удаление отсутствующего участника - no-op
	query := `
		DELETE FROM channel_members
		WHERE channel_id = $1 AND username = $2
	`

	_, err := r.db.Exec(ctx, query, channelID, username)
	if err != nil {
		r.log.Error("Failed to remove channel member", "error", err, "channel_id", channelID)
		return err
	}

	return nil
}

func (r *channelRepository) AppendJoinLog(ctx context.Context, channelID uuid.UUID, username string) error {
	query := `
		INSERT INTO channel_join_log (channel_id, username, logged_at)
		VALUES ($1, $2, NOW())
	`

	_, err := r.db.Exec(ctx, query, channelID, username)
	if err != nil {
		r.log.Error("Failed to append join log", "error", err, "channel_id", channelID)
		return err
	}

	return nil
}

func (r *channelRepository) AppendLeaveLog(ctx context.Context, channelID uuid.UUID, username string) error {
	query := `
		INSERT INTO channel_leave_log (channel_id, username, logged_at)
		VALUES ($1, $2, NOW())
	`

	_, err := r.db.Exec(ctx, query, channelID, username)
	if err != nil {
		r.log.Error("Failed to append leave log", "error", err, "channel_id", channelID)
		return err
	}

	return nil
}

func (r *channelRepository) CreateMessage(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO channel_messages (channel_id, username, body, file_url, file_type, avatar_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		message.ChannelID, message.Username, message.Body,
		message.FileURL, message.FileType, message.ProfilePictureURL, message.CreatedAt,
	).Scan(&message.ID, &message.CreatedAt)

	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrChannelNotFound
		}
		r.log.Error("Failed to create message", "error", err)
		return err
	}

	return nil
}

func (r *channelRepository) GetMessages(ctx context.Context, channelID uuid.UUID) ([]*domain.Message, error) {
	query := `
		SELECT id, channel_id, username, body, file_url, file_type, avatar_url, created_at
		FROM channel_messages
		WHERE channel_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, channelID)
	if err != nil {
		r.log.Error("Failed to get messages", "error", err)
		return nil, err
	}
	defer rows.Close()

	messages := []*domain.Message{}
	for rows.Next() {
		message := &domain.Message{}
		err := rows.Scan(
			&message.ID, &message.ChannelID, &message.Username, &message.Body,
			&message.FileURL, &message.FileType, &message.ProfilePictureURL, &message.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan message", "error", err)
			return nil, err
		}
		messages = append(messages, message)
	}

	return messages, nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
