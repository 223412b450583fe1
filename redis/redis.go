package redis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

const denylistPrefix = "denylist:"

// DenyToken records a logged-out token until it would have expired
// anyway, so the entry cleans itself up.
func DenyToken(token string, ttl time.Duration) error {
	if Client == nil || ttl <= 0 {
		return nil
	}
	return Client.Set(Ctx, denylistPrefix+token, "1", ttl).Err()
}

// IsTokenDenied reports whether token was revoked by a logout. With no
// Redis configured every token passes, matching stateless JWT behavior.
func IsTokenDenied(token string) (bool, error) {
	if Client == nil {
		return false, nil
	}
	n, err := Client.Exists(Ctx, denylistPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
