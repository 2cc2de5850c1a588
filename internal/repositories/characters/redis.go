package characters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	dnderr "github.com/KirkDiggler/combat-engine/internal/errors"
	"github.com/KirkDiggler/combat-engine/internal/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultUpdateRetries = 5

// redisRepo implements the Repository interface using Redis.
// Each character is a JSON blob; owners have an index set.
type redisRepo struct {
	client        redis.UniversalClient
	uuidGenerator uuid.Generator
	maxRetries    int
	now           func() time.Time
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client        redis.UniversalClient
	UUIDGenerator uuid.Generator

	// MaxRetries bounds optimistic retries when a watched key changes mid-update
	MaxRetries int
}

// NewRedisRepository creates a new Redis-backed character repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	if cfg.UUIDGenerator == nil {
		cfg.UUIDGenerator = uuid.NewPrefixedGenerator("char")
	}

	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = defaultUpdateRetries
	}

	return &redisRepo{
		client:        cfg.Client,
		uuidGenerator: cfg.UUIDGenerator,
		maxRetries:    retries,
		now:           time.Now,
	}
}

// NewRedis creates a Redis-backed repository with defaults
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

// key generates the Redis key for a character
func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("character:%s", id)
}

// ownerCharactersKey generates the Redis key for an owner's character set
func (r *redisRepo) ownerCharactersKey(ownerID string) string {
	return fmt.Sprintf("owner:%s:characters", ownerID)
}

// Create stores a new character
func (r *redisRepo) Create(ctx context.Context, char *Character) error {
	if char == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}
	if char.ID == "" {
		char.ID = r.uuidGenerator.New()
	}

	exists, err := r.client.Exists(ctx, r.key(char.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check character existence: %w", err)
	}
	if exists > 0 {
		return dnderr.AlreadyExistsf("character with ID '%s' already exists", char.ID).
			WithMeta("character_id", char.ID)
	}

	stored := char.Clone()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.now().UTC()
	}
	stored.UpdatedAt = stored.CreatedAt

	jsonData, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(char.ID), jsonData, 0)
	if char.OwnerID != "" {
		pipe.SAdd(ctx, r.ownerCharactersKey(char.OwnerID), char.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}

	return nil
}

// Get retrieves a character by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*Character, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, dnderr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	return decodeCharacter(jsonData)
}

// ListByOwner retrieves all characters for a specific owner
func (r *redisRepo) ListByOwner(ctx context.Context, ownerID string) ([]*Character, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	ids, err := r.client.SMembers(ctx, r.ownerCharactersKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list character IDs: %w", err)
	}

	characters := make([]*Character, 0, len(ids))
	for _, id := range ids {
		char, err := r.Get(ctx, id)
		if err != nil {
			// Skip characters that can't be loaded
			log.Printf("[CHARACTERS] skipping %s for owner %s: %v", id, ownerID, err)
			continue
		}
		characters = append(characters, char)
	}

	return characters, nil
}

// Update merges the change under WATCH so concurrent writers never clobber each other.
// The transaction is retried when the key moves underneath it.
func (r *redisRepo) Update(ctx context.Context, id, actorID string, update *Update) (*Character, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	key := r.key(id)
	var merged *Character

	txf := func(tx *redis.Tx) error {
		jsonData, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return dnderr.NotFoundf("character with ID '%s' not found", id).
				WithMeta("character_id", id)
		}
		if err != nil {
			return fmt.Errorf("failed to get existing character: %w", err)
		}

		char, err := decodeCharacter(jsonData)
		if err != nil {
			return err
		}
		update.Apply(char, actorID, r.now())

		out, err := json.Marshal(char)
		if err != nil {
			return fmt.Errorf("failed to marshal character: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, 0)
			return nil
		})
		if err != nil {
			return err
		}

		merged = char
		return nil
	}

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return merged, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			log.Printf("[CHARACTERS] update of %s raced, retrying (%d/%d)", id, attempt+1, r.maxRetries)
			continue
		}

		var appErr *dnderr.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, fmt.Errorf("failed to update character: %w", err)
	}

	return nil, dnderr.Conflictf("character '%s' changed concurrently, gave up after %d attempts", id, r.maxRetries).
		WithMeta("character_id", id)
}

// Delete removes a character and its owner index entry
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dnderr.InvalidArgument("character ID is required")
	}

	char, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.key(id))
	if char.OwnerID != "" {
		pipe.SRem(ctx, r.ownerCharactersKey(char.OwnerID), id)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}

	return nil
}

func decodeCharacter(jsonData string) (*Character, error) {
	var char Character
	if err := json.Unmarshal([]byte(jsonData), &char); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", err)
	}
	return &char, nil
}
