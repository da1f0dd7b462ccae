package domain

import (
	"time"

	"github.com/google/uuid"
)

type Channel struct {
	ID          uuid.UUID `json:"id"`
	GroupID     uuid.UUID `json:"groupId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	// Имена участников в порядке первого входа, без дубликатов
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"createdAt"`
}

type Message struct {
	ID                int64     `json:"id"`
	ChannelID         uuid.UUID `json:"channelId"`
	Username          string    `json:"username"`
	Body              string    `json:"message"`
	FileURL           string    `json:"fileUrl"`
	FileType          string    `json:"fileType"`
	ProfilePictureURL string    `json:"profilePictureUrl"`
	CreatedAt         time.Time `json:"timestamp"`
}

const (
	FileTypeImage = "image"
	FileTypeVideo = "video"
)
