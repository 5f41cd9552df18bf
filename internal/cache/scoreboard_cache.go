package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ScoreboardCache handles Redis ZSET operations for per-schedule reviewer
// score percentages
type ScoreboardCache interface {
	UpdateScore(ctx context.Context, scheduleID, reviewerID string, percentage float64) error
	GetTop(ctx context.Context, scheduleID string, limit int) ([]ScoreboardEntry, error)
	GetRank(ctx context.Context, scheduleID, reviewerID string) (int64, error)
}

// ScoreboardEntry is one reviewer's standing on a schedule's scoreboard
type ScoreboardEntry struct {
	ReviewerID string  `json:"reviewerId"`
	Percentage float64 `json:"percentage"`
	Rank       int     `json:"rank"`
}

type scoreboardCache struct {
	client *redis.Client
}

// NewScoreboardCache creates a new scoreboard cache
func NewScoreboardCache(client *redis.Client) ScoreboardCache {
	return &scoreboardCache{
		client: client,
	}
}

func (c *scoreboardCache) key(scheduleID string) string {
	return fmt.Sprintf("schedule:%s:scores", scheduleID)
}

func (c *scoreboardCache) UpdateScore(ctx context.Context, scheduleID, reviewerID string, percentage float64) error {
	return c.client.ZAdd(ctx, c.key(scheduleID), redis.Z{
		Score:  percentage,
		Member: reviewerID,
	}).Err()
}

func (c *scoreboardCache) GetTop(ctx context.Context, scheduleID string, limit int) ([]ScoreboardEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(scheduleID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]ScoreboardEntry, len(results))
	for i, z := range results {
		entries[i] = ScoreboardEntry{
			ReviewerID: z.Member.(string),
			Percentage: z.Score,
			Rank:       i + 1,
		}
	}
	return entries, nil
}

func (c *scoreboardCache) GetRank(ctx context.Context, scheduleID, reviewerID string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, c.key(scheduleID), reviewerID).Result()
	if err == redis.Nil {
		return -1, nil
	}
	return rank + 1, err // 1-indexed
}
