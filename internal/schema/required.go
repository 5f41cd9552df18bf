package schema

import (
	"sort"

	"thesisdesk/internal/model"
)

// idKeys are probed in order when extracting a question id from a node
// flagged required
var idKeys = []string{"id", "key", "name", "field", "questionId"}

// RequiredIDs recursively walks any raw or canonical schema value and
// returns the deduplicated union of required question ids. Two shapes are
// collected: `required` string arrays at any depth, and question-like nodes
// carrying a literal `required: true`. Different dialects place this
// information at different structural depths, hence the full walk.
func RequiredIDs(root interface{}) []string {
	var ids []string
	seen := make(map[string]bool)

	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	var walk func(v interface{})
	walk = func(v interface{}) {
		switch node := v.(type) {
		case map[string]interface{}:
			switch req := node["required"].(type) {
			case []interface{}:
				for _, r := range req {
					if s, ok := r.(string); ok {
						add(s)
					}
				}
			case bool:
				if req {
					add(stringAt(node, idKeys...))
				}
			}
			// Sorted key order keeps the result deterministic across runs
			keys := make([]string, 0, len(node))
			for k := range node {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				walk(node[k])
			}
		case []interface{}:
			for _, item := range node {
				walk(item)
			}
		}
	}
	walk(root)

	return ids
}

// MergeRequired unions the raw-derived required set with the required flags
// of an already-normalized schema, preserving first-seen order.
func MergeRequired(rawIDs []string, cs *model.CanonicalSchema) []string {
	seen := make(map[string]bool, len(rawIDs))
	out := make([]string, 0, len(rawIDs))
	for _, id := range rawIDs {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	if cs != nil {
		for _, q := range cs.Questions() {
			if q.Required && !seen[q.ID] {
				seen[q.ID] = true
				out = append(out, q.ID)
			}
		}
	}
	return out
}
