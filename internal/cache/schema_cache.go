package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"thesisdesk/internal/model"
)

// SchemaCache holds the most recently normalized form schema so every
// session open does not re-hit the form service. The raw payload is cached
// alongside the canonical form because the required-field walk runs over
// both.
type SchemaCache interface {
	Set(ctx context.Context, raw model.RawSchema, cs *model.CanonicalSchema) error
	Get(ctx context.Context) (model.RawSchema, *model.CanonicalSchema, error)
	Invalidate(ctx context.Context) error
}

type schemaCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSchemaCache creates a schema cache with the given TTL
func NewSchemaCache(client *redis.Client, ttl time.Duration) SchemaCache {
	return &schemaCache{client: client, ttl: ttl}
}

const (
	rawSchemaKey       = "feedback:schema:raw"
	canonicalSchemaKey = "feedback:schema:canonical"
)

type cachedSchema struct {
	Raw       model.RawSchema        `json:"raw"`
	Canonical *model.CanonicalSchema `json:"canonical"`
}

func (c *schemaCache) Set(ctx context.Context, raw model.RawSchema, cs *model.CanonicalSchema) error {
	data, err := json.Marshal(cachedSchema{Raw: raw, Canonical: cs})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, canonicalSchemaKey, data, c.ttl).Err()
}

func (c *schemaCache) Get(ctx context.Context) (model.RawSchema, *model.CanonicalSchema, error) {
	data, err := c.client.Get(ctx, canonicalSchemaKey).Result()
	if err == redis.Nil {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	var cached cachedSchema
	if err := json.Unmarshal([]byte(data), &cached); err != nil {
		return nil, nil, err
	}
	return cached.Raw, cached.Canonical, nil
}

func (c *schemaCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, canonicalSchemaKey, rawSchemaKey).Err()
}
