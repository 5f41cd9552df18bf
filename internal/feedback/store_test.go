package feedback

import (
	"testing"

	"thesisdesk/internal/model"
)

func TestAnswerStoreStartsClean(t *testing.T) {
	s := NewAnswerStore()
	if s.Dirty() {
		t.Error("new store must be clean")
	}
}

func TestAnswerStoreDirtyTracking(t *testing.T) {
	s := NewAnswerStore()
	s.Load(model.AnswerMap{"q1": "hello", "q2": float64(4)})
	if s.Dirty() {
		t.Fatal("load must reset the baseline")
	}

	s.Set("q1", "changed")
	if !s.Dirty() {
		t.Fatal("edit must dirty the store")
	}

	// Writing the original value back restores structural equality
	s.Set("q1", "hello")
	if s.Dirty() {
		t.Error("identical state must read as clean, dirtiness is structural")
	}
}

func TestAnswerStoreClearIsDirtying(t *testing.T) {
	s := NewAnswerStore()
	s.Load(model.AnswerMap{"q1": "value"})

	s.Clear("q1")
	if !s.Dirty() {
		t.Fatal("clearing an answered question must dirty the store")
	}
	if got := s.Get("q1"); got != nil {
		t.Errorf("cleared value = %v, want nil", got)
	}
}

func TestAnswerStoreMarkSaved(t *testing.T) {
	s := NewAnswerStore()
	s.Set("q1", float64(5))
	snap := s.Snapshot()

	s.MarkSaved(snap)
	if s.Dirty() {
		t.Fatal("store must be clean after MarkSaved with current state")
	}

	s.Set("q2", "late edit")
	if !s.Dirty() {
		t.Error("edits after MarkSaved must dirty the store again")
	}
}

func TestAnswerStoreSnapshotIsolation(t *testing.T) {
	s := NewAnswerStore()
	s.Load(model.AnswerMap{
		"list":   []interface{}{"a", "b"},
		"nested": map[string]interface{}{"k": "v"},
	})

	snap := s.Snapshot()
	snap["list"].([]interface{})[0] = "mutated"
	snap["nested"].(map[string]interface{})["k"] = "mutated"
	snap["new"] = true

	if got := s.Get("list").([]interface{})[0]; got != "a" {
		t.Errorf("snapshot mutation leaked into store: %v", got)
	}
	if got := s.Get("nested").(map[string]interface{})["k"]; got != "v" {
		t.Errorf("snapshot mutation leaked into store: %v", got)
	}
	if s.Get("new") != nil {
		t.Error("snapshot key addition leaked into store")
	}
}

func TestAnswerStoreLoadReplacesDraft(t *testing.T) {
	s := NewAnswerStore()
	s.Set("inflight", "edit")

	s.Load(model.AnswerMap{"q1": "persisted"})
	if s.Get("inflight") != nil {
		t.Error("load must replace the draft wholesale, not merge")
	}
	if s.Dirty() {
		t.Error("load must leave the store clean")
	}
}
