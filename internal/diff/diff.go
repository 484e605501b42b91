// Package diff computes the two diff shapes stored in the content
// history logs: a shallow structural diff between JSON snapshots and a
// line-level diff between text blobs. Pure functions, no state.
package diff

import (
	"encoding/json"
	"reflect"
	"sort"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// FieldChangeType classifies one structural field change
type FieldChangeType string

const (
	FieldAdded    FieldChangeType = "added"
	FieldRemoved  FieldChangeType = "removed"
	FieldModified FieldChangeType = "modified"
)

// FieldChange one top-level field difference between two snapshots
type FieldChange struct {
	Type     FieldChangeType `json:"type"`
	Field    string          `json:"field"`
	OldValue interface{}     `json:"old_value,omitempty"`
	NewValue interface{}     `json:"new_value,omitempty"`
}

// TextSegment one run of a line diff. Segments with neither flag set
// are common to both inputs.
type TextSegment struct {
	Value   string `json:"value"`
	Added   bool   `json:"added,omitempty"`
	Removed bool   `json:"removed,omitempty"`
}

// Structural compares two JSON-like objects at the top level only.
// Nested objects and arrays are compared by deep equality and reported
// as a single modified field; the diff never recurses into them. This
// shallow contract is part of the stored history format and must not
// change for rows already written.
//
// Result ordering is deterministic (fields sorted by name).
func Structural(oldObj, newObj map[string]interface{}) []FieldChange {
	changes := []FieldChange{}

	fields := make(map[string]struct{}, len(oldObj)+len(newObj))
	for k := range oldObj {
		fields[k] = struct{}{}
	}
	for k := range newObj {
		fields[k] = struct{}{}
	}

	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, field := range names {
		oldVal, inOld := oldObj[field]
		newVal, inNew := newObj[field]

		switch {
		case !inOld:
			changes = append(changes, FieldChange{Type: FieldAdded, Field: field, NewValue: newVal})
		case !inNew:
			changes = append(changes, FieldChange{Type: FieldRemoved, Field: field, OldValue: oldVal})
		case !reflect.DeepEqual(oldVal, newVal):
			changes = append(changes, FieldChange{Type: FieldModified, Field: field, OldValue: oldVal, NewValue: newVal})
		}
	}

	return changes
}

// StructuralJSON unmarshals two snapshot blobs and diffs them. Blobs
// that are empty or not JSON objects diff as empty objects.
func StructuralJSON(oldData, newData []byte) []FieldChange {
	return Structural(asObject(oldData), asObject(newData))
}

func asObject(data []byte) map[string]interface{} {
	if len(data) == 0 {
		return map[string]interface{}{}
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return map[string]interface{}{}
	}
	return obj
}

// Text computes a line-oriented diff between two blobs. Concatenating
// the unchanged and added segments of the result yields newText;
// unchanged plus removed yields oldText. Swapping the inputs swaps the
// added/removed labeling.
func Text(oldText, newText string) []TextSegment {
	dmp := diffmatchpatch.New()

	// Line mode: map lines to runes, diff the rune strings, then
	// rehydrate so segment boundaries always fall on line boundaries.
	oldRunes, newRunes, lines := dmp.DiffLinesToRunes(oldText, newText)
	diffs := dmp.DiffMainRunes(oldRunes, newRunes, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	segments := make([]TextSegment, 0, len(diffs))
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			segments = append(segments, TextSegment{Value: d.Text, Added: true})
		case diffmatchpatch.DiffDelete:
			segments = append(segments, TextSegment{Value: d.Text, Removed: true})
		default:
			segments = append(segments, TextSegment{Value: d.Text})
		}
	}
	return segments
}

// Counts tallies a structural diff by change type
func Counts(changes []FieldChange) (added, removed, modified int) {
	for _, c := range changes {
		switch c.Type {
		case FieldAdded:
			added++
		case FieldRemoved:
			removed++
		case FieldModified:
			modified++
		}
	}
	return added, removed, modified
}
