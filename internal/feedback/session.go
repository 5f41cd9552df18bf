package feedback

import (
	"context"
	"log"
	"sync"
	"time"

	"thesisdesk/internal/model"
)

// Persister saves and submits drafts against the external form service.
// Implemented by formclient.Client; tests substitute a fake.
type Persister interface {
	SaveAnswers(ctx context.Context, itemID string, answers model.AnswerMap) error
	SubmitItem(ctx context.Context, itemID string, answers model.AnswerMap) (*model.FeedbackItem, error)
}

// saveTimeout bounds a single background autosave attempt
const saveTimeout = 15 * time.Second

// Hooks are optional observers of successful persistence transitions.
// They run outside the network call but inside the session lock; keep
// them cheap and non-blocking.
type Hooks struct {
	OnSaved     func(itemID string, answers model.AnswerMap, at time.Time)
	OnSubmitted func(item *model.FeedbackItem, score model.ScoreSummary)
}

// Session coordinates one reviewer's draft for one feedback item: it owns
// the answer store, the derived indexes, debounced autosave, explicit save,
// and gated submit. A session is single-owner; the mutex exists because the
// autosave timer fires on a runtime goroutine.
type Session struct {
	mu sync.Mutex

	item        *model.FeedbackItem
	schema      *model.CanonicalSchema // nil when no dialect matched (raw fallback)
	requiredIDs []string
	ratings     []model.RatingQuestion

	store     *AnswerStore
	persister Persister
	hooks     Hooks

	quiet time.Duration
	timer *time.Timer

	// generation fences stale async results: it bumps on every reload and
	// close, and a save only applies if the generation it was scheduled
	// under is still current.
	generation uint64

	lastSavedAt time.Time
	closed      bool
}

// NewSession builds a session around a loaded item. The store is seeded
// exactly once from the item's persisted answers.
func NewSession(item *model.FeedbackItem, cs *model.CanonicalSchema, requiredIDs []string, ratings []model.RatingQuestion, p Persister, quiet time.Duration, hooks Hooks) *Session {
	s := &Session{
		item:        item,
		schema:      cs,
		requiredIDs: requiredIDs,
		ratings:     ratings,
		store:       NewAnswerStore(),
		persister:   p,
		hooks:       hooks,
		quiet:       quiet,
	}
	s.store.Load(item.Answers)
	return s
}

// SetAnswer writes a draft value and schedules a silent save after the
// quiet period. Rejected once the item is read-only.
func (s *Session) SetAnswer(id string, value model.AnswerValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	s.store.Set(id, value)
	s.scheduleAutosaveLocked()
	return nil
}

// ClearAnswer writes an explicit null and schedules a silent save
func (s *Session) ClearAnswer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	s.store.Clear(id)
	s.scheduleAutosaveLocked()
	return nil
}

func (s *Session) editableLocked() error {
	if s.closed {
		return ErrSessionClosed
	}
	if !s.item.Status.Editable() {
		return ErrNotEditable
	}
	return nil
}

// scheduleAutosaveLocked resets the single debounce timer. A burst of edits
// collapses into at most one silent save per quiet period.
func (s *Session) scheduleAutosaveLocked() {
	gen := s.generation
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.quiet, func() {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := s.save(ctx, gen); err != nil {
			// Silent save failure: draft retained, next mutation retries
			log.Printf("[Feedback] autosave for item %s failed: %v", s.ItemID(), err)
		}
	})
}

// Save persists the draft now. Explicit saves also cancel any pending
// autosave so the same state is not written twice.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.stopTimerLocked()
	gen := s.generation
	s.mu.Unlock()
	return s.save(ctx, gen)
}

// save is the shared persistence path for explicit, silent, and pre-submit
// saves. It is a no-op when the draft equals the baseline. The network call
// runs outside the lock; the result is applied only if the session
// generation is unchanged (stale-response fence).
func (s *Session) save(ctx context.Context, gen uint64) error {
	s.mu.Lock()
	if s.closed || gen != s.generation || !s.item.Status.Editable() {
		s.mu.Unlock()
		return nil
	}
	if !s.store.Dirty() {
		s.mu.Unlock()
		return nil
	}
	snapshot := s.store.Snapshot()
	itemID := s.item.ID
	s.mu.Unlock()

	if err := s.persister.SaveAnswers(ctx, itemID, snapshot); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation {
		// Item changed while the save was in flight; drop the result
		return nil
	}
	s.store.MarkSaved(snapshot)
	s.lastSavedAt = time.Now()
	if s.hooks.OnSaved != nil {
		s.hooks.OnSaved(itemID, snapshot, s.lastSavedAt)
	}
	return nil
}

// Submit finalizes the item. It refuses synchronously, with no network
// call, when the item is read-only or required answers are missing. The
// pre-submit save is sequenced strictly before the submit call.
func (s *Session) Submit(ctx context.Context) (*model.FeedbackItem, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if !s.item.Status.Editable() {
		s.mu.Unlock()
		return nil, ErrNotEditable
	}
	if comp := ComputeCompletion(s.store.Answers(), s.requiredIDs); len(comp.Missing) > 0 {
		s.mu.Unlock()
		return nil, &ValidationError{Missing: comp.Missing}
	}
	s.stopTimerLocked()
	gen := s.generation
	itemID := s.item.ID
	s.mu.Unlock()

	// Flush any unsaved edits first so the submit never races a
	// half-persisted draft
	if err := s.save(ctx, gen); err != nil {
		return nil, err
	}

	s.mu.Lock()
	snapshot := s.store.Snapshot()
	s.mu.Unlock()

	updated, err := s.persister.SubmitItem(ctx, itemID, snapshot)
	if err != nil {
		return nil, &PersistenceError{Op: "submit", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation {
		return nil, ErrSessionClosed
	}
	if updated != nil {
		// Server returned the finalized item; adopt it wholesale
		s.item = updated
		s.store.Load(updated.Answers)
	} else {
		now := time.Now()
		s.item.Status = model.ItemStatusSubmitted
		s.item.SubmittedAt = &now
		s.item.Answers = snapshot
		s.store.MarkSaved(snapshot)
	}
	if s.hooks.OnSubmitted != nil {
		s.hooks.OnSubmitted(s.item, ComputeScore(s.store.Answers(), s.ratings))
	}
	return s.item, nil
}

// Reload replaces the session's item wholesale: new baseline, dirty reset,
// pending saves fenced off. Any "discard unsaved changes" confirmation is
// the caller's responsibility.
func (s *Session) Reload(item *model.FeedbackItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.stopTimerLocked()
	s.item = item
	s.store.Load(item.Answers)
}

// Close invalidates the session; in-flight async saves will not apply
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.stopTimerLocked()
	s.closed = true
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Completion computes live required/answered/missing counts
func (s *Session) Completion() model.Completion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeCompletion(s.store.Answers(), s.requiredIDs)
}

// Score computes the live weighted score summary
func (s *Session) Score() model.ScoreSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeScore(s.store.Answers(), s.ratings)
}

// Item returns a copy of the session's item with the current draft answers
func (s *Session) Item() model.FeedbackItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := *s.item
	item.Answers = s.store.Snapshot()
	return item
}

// ItemID returns the id of the owned item
func (s *Session) ItemID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.item.ID
}

// Schema returns the normalized schema, or nil when normalization failed
// and the raw-answer fallback is in effect
func (s *Session) Schema() *model.CanonicalSchema {
	return s.schema
}

// Dirty reports whether the draft differs from the persisted baseline
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Dirty()
}

// LastSavedAt returns the time of the most recent successful save
func (s *Session) LastSavedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSavedAt
}
