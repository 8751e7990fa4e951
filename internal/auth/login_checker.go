package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	now         func() time.Time
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
		now:         time.Now,
	}
}

// IsLogged reports whether the token belongs to a live session. Unknown
// and logged out tokens are not an error.
func (c *LoginChecker) IsLogged(ctx context.Context, token string) (bool, error) {
	createdAtUnixStr, err := c.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	createdAtUnix, err := strconv.ParseInt(createdAtUnixStr, 10, 64)
	if err != nil {
		return false, err
	}
	// logout zeroes the session
	if createdAtUnix <= 0 {
		return false, nil
	}

	sessionDuration := c.now().Sub(time.Unix(createdAtUnix, 0))
	return sessionDuration <= c.ttl, nil
}
