package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"thesisdesk/internal/model"
)

// DraftCache keeps the latest successfully saved draft per item, so the
// admin UI can show a recovery copy when the form service is unreachable.
type DraftCache interface {
	SetDraft(ctx context.Context, itemID string, answers model.AnswerMap, savedAt time.Time) error
	GetDraft(ctx context.Context, itemID string) (model.AnswerMap, time.Time, error)
	DeleteDraft(ctx context.Context, itemID string) error
}

type draftCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftCache creates a draft backup cache
func NewDraftCache(client *redis.Client) DraftCache {
	return &draftCache{client: client, ttl: 72 * time.Hour}
}

func (c *draftCache) draftKey(itemID string) string {
	return fmt.Sprintf("feedback:item:%s:draft", itemID)
}

type cachedDraft struct {
	Answers model.AnswerMap `json:"answers"`
	SavedAt time.Time       `json:"savedAt"`
}

func (c *draftCache) SetDraft(ctx context.Context, itemID string, answers model.AnswerMap, savedAt time.Time) error {
	data, err := json.Marshal(cachedDraft{Answers: answers, SavedAt: savedAt})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.draftKey(itemID), data, c.ttl).Err()
}

func (c *draftCache) GetDraft(ctx context.Context, itemID string) (model.AnswerMap, time.Time, error) {
	data, err := c.client.Get(ctx, c.draftKey(itemID)).Result()
	if err == redis.Nil {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	var cached cachedDraft
	if err := json.Unmarshal([]byte(data), &cached); err != nil {
		return nil, time.Time{}, err
	}
	return cached.Answers, cached.SavedAt, nil
}

func (c *draftCache) DeleteDraft(ctx context.Context, itemID string) error {
	return c.client.Del(ctx, c.draftKey(itemID)).Err()
}
