package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/SeorinLee/Software-frameworks-sub000/pkg/logger"
)

type Repositories struct {
	User      UserRepository
	Group     GroupRepository
	Channel   ChannelRepository
	RateLimit RateLimitRepository
}

func NewRepositories(db *pgxpool.Pool, redis *redis.Client, log logger.Logger) *Repositories {
	return &Repositories{
		User:      NewUserRepository(db, log),
		Group:     NewGroupRepository(db, log),
		Channel:   NewChannelRepository(db, log),
		RateLimit: NewRateLimitRepository(redis, log),
	}
}
