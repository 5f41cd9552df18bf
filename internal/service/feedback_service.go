package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"thesisdesk/internal/cache"
	"thesisdesk/internal/feedback"
	"thesisdesk/internal/formclient"
	"thesisdesk/internal/model"
	"thesisdesk/internal/repository"
	"thesisdesk/internal/schema"
)

var ErrNoSession = errors.New("no open session for item")

// FeedbackService owns one feedback session per open item: it ingests the
// form schema and the item record, normalizes and indexes the schema, and
// routes edits, saves and submits to the owning session.
type FeedbackService struct {
	client       *formclient.Client
	schemaCache  cache.SchemaCache
	draftCache   cache.DraftCache
	scoreboard   cache.ScoreboardCache
	feedbackRepo repository.FeedbackRepo
	broadcaster  Broadcaster
	quiet        time.Duration

	mu       sync.Mutex
	sessions map[string]*feedback.Session
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(client *formclient.Client, schemaCache cache.SchemaCache, draftCache cache.DraftCache, scoreboard cache.ScoreboardCache, feedbackRepo repository.FeedbackRepo, quiet time.Duration) *FeedbackService {
	return &FeedbackService{
		client:       client,
		schemaCache:  schemaCache,
		draftCache:   draftCache,
		scoreboard:   scoreboard,
		feedbackRepo: feedbackRepo,
		quiet:        quiet,
		sessions:     make(map[string]*feedback.Session),
	}
}

// SetBroadcaster sets the broadcaster for observer events
func (s *FeedbackService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// OpenResult is the payload returned when a session opens
type OpenResult struct {
	Item            model.FeedbackItem     `json:"item"`
	Schema          *model.CanonicalSchema `json:"schema,omitempty"`
	SchemaAvailable bool                   `json:"schemaAvailable"`
	Completion      model.Completion       `json:"completion"`
	Score           model.ScoreSummary     `json:"score"`
}

// SessionSummary is the live state of an open session
type SessionSummary struct {
	ItemID      string             `json:"itemId"`
	Status      model.ItemStatus   `json:"status"`
	Dirty       bool               `json:"dirty"`
	LastSavedAt *time.Time         `json:"lastSavedAt,omitempty"`
	Completion  model.Completion   `json:"completion"`
	Score       model.ScoreSummary `json:"score"`
}

// Open loads the item and schema and starts a session. Opening an item that
// already has a session replaces it wholesale: the answer baseline resets
// unconditionally, and any in-flight save of the old session is fenced off.
func (s *FeedbackService) Open(ctx context.Context, itemID string) (*OpenResult, error) {
	item, err := s.client.FetchItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	raw, cs := s.loadSchema(ctx)
	rawIDs := schema.RequiredIDs(map[string]interface{}(raw))
	requiredIDs := schema.MergeRequired(rawIDs, cs)
	ratings := schema.RatingQuestions(cs)

	sess := feedback.NewSession(item, cs, requiredIDs, ratings, s.client, s.quiet, feedback.Hooks{
		OnSaved:     s.onSaved,
		OnSubmitted: s.onSubmitted,
	})

	s.mu.Lock()
	if old, ok := s.sessions[itemID]; ok {
		old.Close()
	}
	s.sessions[itemID] = sess
	s.mu.Unlock()

	return &OpenResult{
		Item:            sess.Item(),
		Schema:          cs,
		SchemaAvailable: cs != nil,
		Completion:      sess.Completion(),
		Score:           sess.Score(),
	}, nil
}

// loadSchema returns the cached raw+canonical schema, or fetches and
// normalizes it. Normalization failure is non-fatal: the session falls back
// to a raw-answer view with a nil schema.
func (s *FeedbackService) loadSchema(ctx context.Context) (model.RawSchema, *model.CanonicalSchema) {
	if raw, cs, err := s.schemaCache.Get(ctx); err == nil && cs != nil {
		return raw, cs
	}

	raw, err := s.client.FetchSchema(ctx)
	if err != nil {
		log.Printf("[Feedback] schema ingestion failed: %v", err)
		return nil, nil
	}

	cs := schema.Normalize(raw)
	if cs == nil {
		log.Printf("[Feedback] %v, using raw-answer fallback", schema.ErrNoUsableDialect)
		return raw, nil
	}

	if err := s.schemaCache.Set(ctx, raw, cs); err != nil {
		log.Printf("[Feedback] schema cache write failed: %v", err)
	}
	return raw, cs
}

// RefreshSchema drops the cached schema so the next open re-ingests it
func (s *FeedbackService) RefreshSchema(ctx context.Context) error {
	return s.schemaCache.Invalidate(ctx)
}

func (s *FeedbackService) session(itemID string) (*feedback.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[itemID]
	if !ok {
		return nil, ErrNoSession
	}
	return sess, nil
}

// SetAnswer writes one draft value and returns the live summary
func (s *FeedbackService) SetAnswer(itemID, questionID string, value model.AnswerValue) (*SessionSummary, error) {
	sess, err := s.session(itemID)
	if err != nil {
		return nil, err
	}
	if err := sess.SetAnswer(questionID, value); err != nil {
		return nil, err
	}
	return s.summarize(sess), nil
}

// ClearAnswer nulls one draft value and returns the live summary
func (s *FeedbackService) ClearAnswer(itemID, questionID string) (*SessionSummary, error) {
	sess, err := s.session(itemID)
	if err != nil {
		return nil, err
	}
	if err := sess.ClearAnswer(questionID); err != nil {
		return nil, err
	}
	return s.summarize(sess), nil
}

// Save persists the draft explicitly
func (s *FeedbackService) Save(ctx context.Context, itemID string) (*SessionSummary, error) {
	sess, err := s.session(itemID)
	if err != nil {
		return nil, err
	}
	if err := sess.Save(ctx); err != nil {
		return nil, err
	}
	return s.summarize(sess), nil
}

// Submit finalizes the item through its session
func (s *FeedbackService) Submit(ctx context.Context, itemID string) (*model.FeedbackItem, error) {
	sess, err := s.session(itemID)
	if err != nil {
		return nil, err
	}
	return sess.Submit(ctx)
}

// Summary returns the live completion and score state of an open session
func (s *FeedbackService) Summary(itemID string) (*SessionSummary, error) {
	sess, err := s.session(itemID)
	if err != nil {
		return nil, err
	}
	return s.summarize(sess), nil
}

// Close ends a session; pending autosaves are fenced off
func (s *FeedbackService) Close(itemID string) {
	s.mu.Lock()
	sess, ok := s.sessions[itemID]
	if ok {
		delete(s.sessions, itemID)
	}
	s.mu.Unlock()
	if ok {
		sess.Close()
	}
}

func (s *FeedbackService) summarize(sess *feedback.Session) *SessionSummary {
	item := sess.Item()
	summary := &SessionSummary{
		ItemID:     item.ID,
		Status:     item.Status,
		Dirty:      sess.Dirty(),
		Completion: sess.Completion(),
		Score:      sess.Score(),
	}
	if at := sess.LastSavedAt(); !at.IsZero() {
		summary.LastSavedAt = &at
	}
	return summary
}

// onSaved backs up the saved draft in Redis and notifies watchers. The hook
// runs inside the session lock, so the work is dispatched to a goroutine.
func (s *FeedbackService) onSaved(itemID string, answers model.AnswerMap, at time.Time) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.draftCache.SetDraft(ctx, itemID, answers, at); err != nil {
			log.Printf("[Feedback] draft backup for item %s failed: %v", itemID, err)
		}
		if s.broadcaster != nil {
			s.broadcaster.BroadcastToWatchers(itemID, "item_saved", map[string]interface{}{
				"itemId":  itemID,
				"savedAt": at,
			})
		}
	}()
}

// onSubmitted records the finalized item locally and notifies watchers
func (s *FeedbackService) onSubmitted(item *model.FeedbackItem, score model.ScoreSummary) {
	record := &repository.FeedbackRecord{
		ItemID:      item.ID,
		ScheduleID:  item.ScheduleID,
		ReviewerID:  item.ReviewerID,
		StudentID:   item.StudentID,
		Answers:     item.Answers.Clone(),
		Score:       score,
		SubmittedAt: time.Now(),
	}
	if item.SubmittedAt != nil {
		record.SubmittedAt = *item.SubmittedAt
	}
	itemID := item.ID
	status := item.Status

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.feedbackRepo.Upsert(ctx, record); err != nil {
			log.Printf("[Feedback] failed to record submission %s: %v", itemID, err)
		}
		if err := s.draftCache.DeleteDraft(ctx, itemID); err != nil {
			log.Printf("[Feedback] failed to drop draft backup %s: %v", itemID, err)
		}
		if record.ScheduleID != "" && record.ReviewerID != "" {
			if err := s.scoreboard.UpdateScore(ctx, record.ScheduleID, record.ReviewerID, score.Percentage); err != nil {
				log.Printf("[Feedback] scoreboard update for schedule %s failed: %v", record.ScheduleID, err)
			}
		}
		if s.broadcaster != nil {
			s.broadcaster.BroadcastToWatchers(itemID, "item_submitted", map[string]interface{}{
				"itemId": itemID,
				"status": status,
			})
		}
	}()
}

// RecoverDraft returns the Redis backup of the last saved draft, used by
// the admin UI when the form service is unreachable
func (s *FeedbackService) RecoverDraft(ctx context.Context, itemID string) (model.AnswerMap, time.Time, error) {
	return s.draftCache.GetDraft(ctx, itemID)
}
