package redis

import (
	redis_models "SmashSessions/models/redis"
	redis_utils "SmashSessions/services/redis/utils"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// How long a rendered message keeps its interaction context. Discord
// components stay clickable much longer, but after this window the
// callback falls back to parsing the rank out of the title.
const interactionTTL = 24 * time.Hour

// ErrNoInteractionContext means the message id has no stored context
// (expired or never rendered by this process).
var ErrNoInteractionContext = errors.New("no interaction context for this message")

// RedisClient handles Redis operations
type RedisClient struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(addr string, db int) *RedisClient {
	var client *redis.Client
	if addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		})
	}
	return &RedisClient{
		Client: client,
		Ctx:    context.Background(),
	}
}

// SetInteractionContext records which session a rendered message shows.
func (rc *RedisClient) SetInteractionContext(ic *redis_models.InteractionContext) error {
	blob, err := json.Marshal(ic)
	if err != nil {
		return fmt.Errorf("failed to encode interaction context: %v", err)
	}
	key := redis_utils.FormatInteractionKey(ic.MessageID)
	if err := rc.Client.Set(rc.Ctx, key, blob, interactionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store interaction context %s: %v", key, err)
	}
	return nil
}

// GetInteractionContext resolves the session a message is showing.
func (rc *RedisClient) GetInteractionContext(messageID string) (*redis_models.InteractionContext, error) {
	key := redis_utils.FormatInteractionKey(messageID)
	blob, err := rc.Client.Get(rc.Ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrNoInteractionContext
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read interaction context %s: %v", key, err)
	}
	var ic redis_models.InteractionContext
	if err := json.Unmarshal(blob, &ic); err != nil {
		return nil, fmt.Errorf("failed to decode interaction context %s: %v", key, err)
	}
	return &ic, nil
}

// DeleteInteractionContext drops the context of a message, used when the
// session it displayed was deleted.
func (rc *RedisClient) DeleteInteractionContext(messageID string) error {
	key := redis_utils.FormatInteractionKey(messageID)
	if err := rc.Client.Del(rc.Ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete interaction context %s: %v", key, err)
	}
	return nil
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.Client.Del(rc.Ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to cleanup Redis key %s: %v", key, err)
		}
	}
	return nil
}
