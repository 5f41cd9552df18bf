package feedback

import (
	"bytes"
	"encoding/json"

	"thesisdesk/internal/model"
)

// AnswerStore owns the mutable draft answer map for one feedback item.
// It is a plain value type with no locking; the owning Session serializes
// access. Dirtiness is structural: the current answers are compared against
// the last persisted baseline by serialized equality, not reference equality.
type AnswerStore struct {
	answers  model.AnswerMap
	baseline []byte // canonical JSON of the last persisted state
}

// NewAnswerStore returns an empty, clean store
func NewAnswerStore() *AnswerStore {
	s := &AnswerStore{answers: model.AnswerMap{}}
	s.baseline = marshalAnswers(s.answers)
	return s
}

// Load wholesale-replaces the draft with the persisted answers and resets
// the baseline. Used only at item load; in-flight edits are replaced
// deliberately, never merged.
func (s *AnswerStore) Load(answers model.AnswerMap) {
	s.answers = deepCopy(answers)
	s.baseline = marshalAnswers(s.answers)
}

// Set writes a draft value
func (s *AnswerStore) Set(id string, value model.AnswerValue) {
	s.answers[id] = value
}

// Clear writes an explicit null for the question
func (s *AnswerStore) Clear(id string) {
	s.answers[id] = nil
}

// Get returns the current draft value for a question
func (s *AnswerStore) Get(id string) model.AnswerValue {
	return s.answers[id]
}

// Answers exposes the live map for read-only computation under the owner's
// lock. Mutation goes through Set/Clear only.
func (s *AnswerStore) Answers() model.AnswerMap {
	return s.answers
}

// Snapshot returns an immutable deep copy of the draft, usable as a
// persistence payload and baseline
func (s *AnswerStore) Snapshot() model.AnswerMap {
	return deepCopy(s.answers)
}

// Dirty reports whether the draft differs structurally from the last
// persisted baseline
func (s *AnswerStore) Dirty() bool {
	return !bytes.Equal(marshalAnswers(s.answers), s.baseline)
}

// MarkSaved records the given snapshot as the new persisted baseline
func (s *AnswerStore) MarkSaved(snapshot model.AnswerMap) {
	s.baseline = marshalAnswers(snapshot)
}

// deepCopy isolates a map via a JSON round trip. Answer values are always
// JSON-representable, so a failed round trip can only mean an empty map.
func deepCopy(m model.AnswerMap) model.AnswerMap {
	out := model.AnswerMap{}
	if len(m) == 0 {
		return out
	}
	data, err := json.Marshal(m)
	if err != nil {
		return out
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return model.AnswerMap{}
	}
	return out
}

// marshalAnswers produces canonical JSON; encoding/json sorts map keys, so
// equal maps always serialize identically
func marshalAnswers(m model.AnswerMap) []byte {
	data, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	return data
}
