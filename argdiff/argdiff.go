//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

// Package argdiff deep-compares tool call argument maps and scores the overlap.
package argdiff

import (
	"sort"

	"trpc.group/trpc-go/toolscore-go/callset"
)

// EntryKind classifies a single field-level comparison outcome.
type EntryKind int

const (
	// EntryMatch marks a field present in both maps with equal values.
	EntryMatch EntryKind = iota
	// EntryMissing marks a field present in expected only.
	EntryMissing
	// EntryExtra marks a field present in actual only.
	EntryExtra
	// EntryTypeMismatch marks a field present in both maps with different JSON types.
	EntryTypeMismatch
	// EntryValueMismatch marks a field present in both maps with the same type but different values.
	EntryValueMismatch
	// EntrySchemaViolation marks a schema rule failure. Schema entries are
	// appended on top of the classification entries and never replace them.
	EntrySchemaViolation
)

// String returns the wire name of the entry kind.
func (k EntryKind) String() string {
	switch k {
	case EntryMatch:
		return "match"
	case EntryMissing:
		return "missing"
	case EntryExtra:
		return "extra"
	case EntryTypeMismatch:
		return "type_mismatch"
	case EntryValueMismatch:
		return "value_mismatch"
	case EntrySchemaViolation:
		return "schema_violation"
	default:
		return "unknown"
	}
}

// Entry is a single field-level diff entry. Key is the dotted path of the
// field; nested objects surface one entry per leaf field.
type Entry struct {
	// Key is the dotted path of the field, e.g. "filters.date.start".
	Key string `json:"key"`
	// Kind classifies the comparison outcome.
	Kind EntryKind `json:"kind"`
	// Expected is the expected value when present.
	Expected *callset.Value `json:"expected,omitempty"`
	// Actual is the actual value when present.
	Actual *callset.Value `json:"actual,omitempty"`
	// Reason carries additional detail such as schema violation text.
	Reason string `json:"reason,omitempty"`
}

// Score holds precision, recall and F-measure for a diff.
type Score struct {
	// Precision is the fraction of actual fields that match in range [0, 1].
	Precision float64 `json:"precision"`
	// Recall is the fraction of expected fields that are matched in range [0, 1].
	Recall float64 `json:"recall"`
	// FMeasure is the harmonic mean of precision and recall in range [0, 1].
	FMeasure float64 `json:"fMeasure"`
}

// fMeasure computes the harmonic mean of precision and recall.
func fMeasure(precision, recall float64) float64 {
	if precision+recall > 0 {
		return 2 * precision * recall / (precision + recall)
	}
	return 0
}

// Diff is the result of comparing two argument maps.
type Diff struct {
	// Entries lists one entry per field present in either map, plus any
	// schema violations.
	Entries []Entry `json:"entries"`
	// Score aggregates the field-level outcomes.
	Score Score `json:"score"`
}

// Clean reports whether the diff carries no missing, extra or mismatching fields.
// Schema violations do not affect cleanliness.
func (d *Diff) Clean() bool {
	for _, entry := range d.Entries {
		switch entry.Kind {
		case EntryMatch, EntrySchemaViolation:
		default:
			return false
		}
	}
	return true
}

// Count returns the number of entries with the given kind.
func (d *Diff) Count(kind EntryKind) int {
	n := 0
	for _, entry := range d.Entries {
		if entry.Kind == kind {
			n++
		}
	}
	return n
}

// Compare deep-compares two argument maps. It is a pure function: neither map
// is mutated and repeated calls produce identical diffs.
func Compare(expected, actual callset.ArgMap, opt ...Option) *Diff {
	opts := newOptions(opt...)
	d := &Diff{}
	compareLevel(d, "", expected, actual, opts)
	appendSchemaViolations(d, actual, opts)
	d.Score = scoreEntries(d.Entries)
	return d
}

// compareLevel walks one nesting level, emitting one entry per field present
// in either map. Nested objects recurse instead of emitting a parent entry.
func compareLevel(d *Diff, prefix string, expected, actual callset.ArgMap, opts *options) {
	for _, key := range sortedKeys(expected, actual) {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		expectedVal, inExpected := expected[key]
		actualVal, inActual := actual[key]
		switch {
		case inExpected && !inActual:
			d.Entries = append(d.Entries, Entry{Key: path, Kind: EntryMissing, Expected: ref(expectedVal)})
		case !inExpected && inActual:
			d.Entries = append(d.Entries, Entry{Key: path, Kind: EntryExtra, Actual: ref(actualVal)})
		case expectedVal.Kind() != actualVal.Kind():
			d.Entries = append(d.Entries, Entry{
				Key:  path,
				Kind: EntryTypeMismatch,
				Expected: ref(expectedVal), Actual: ref(actualVal),
			})
		case expectedVal.Kind() == callset.KindObject:
			if len(expectedVal.ObjectVal()) == 0 && len(actualVal.ObjectVal()) == 0 {
				// Two empty objects have no leaf fields to surface.
				d.Entries = append(d.Entries, Entry{
					Key:  path,
					Kind: EntryMatch,
					Expected: ref(expectedVal), Actual: ref(actualVal),
				})
				continue
			}
			compareLevel(d, path, expectedVal.ObjectVal(), actualVal.ObjectVal(), opts)
		default:
			kind := EntryValueMismatch
			if valuesEqual(path, expectedVal, actualVal, opts) {
				kind = EntryMatch
			}
			d.Entries = append(d.Entries, Entry{
				Key:  path,
				Kind: kind,
				Expected: ref(expectedVal), Actual: ref(actualVal),
			})
		}
	}
}

// valuesEqual compares two same-kind values, honoring set-valued array paths.
func valuesEqual(path string, expected, actual callset.Value, opts *options) bool {
	if expected.Kind() == callset.KindArray && opts.setKeys[path] {
		return expected.EqualAsSet(actual)
	}
	return expected.Equal(actual)
}

// appendSchemaViolations validates actual arguments against the configured
// schema and appends one violation entry per failed rule set. Validation runs
// independently of the match classification.
func appendSchemaViolations(d *Diff, actual callset.ArgMap, opts *options) {
	if len(opts.schema) == 0 {
		return
	}
	names := make([]string, 0, len(opts.schema))
	for name := range opts.schema {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rule := opts.schema[name]
		if rule == nil {
			continue
		}
		value, ok := actual[name]
		if !ok {
			if rule.IsRequired() {
				d.Entries = append(d.Entries, Entry{
					Key:    name,
					Kind:   EntrySchemaViolation,
					Reason: "missing required argument " + name,
				})
			}
			continue
		}
		if err := rule.Validate(name, value); err != nil {
			d.Entries = append(d.Entries, Entry{
				Key:    name,
				Kind:   EntrySchemaViolation,
				Actual: ref(value),
				Reason: err.Error(),
			})
		}
	}
}

// scoreEntries aggregates field outcomes into precision, recall and F1.
// Vacuously perfect when both maps are empty.
func scoreEntries(entries []Entry) Score {
	var match, missing, extra, mismatch int
	for _, entry := range entries {
		switch entry.Kind {
		case EntryMatch:
			match++
		case EntryMissing:
			missing++
		case EntryExtra:
			extra++
		case EntryTypeMismatch, EntryValueMismatch:
			mismatch++
		}
	}
	if match+missing+extra+mismatch == 0 {
		return Score{Precision: 1, Recall: 1, FMeasure: 1}
	}
	precision := 0.0
	if actualTotal := match + extra + mismatch; actualTotal > 0 {
		precision = float64(match) / float64(actualTotal)
	}
	recall := 0.0
	if expectedTotal := match + missing + mismatch; expectedTotal > 0 {
		recall = float64(match) / float64(expectedTotal)
	}
	return Score{Precision: precision, Recall: recall, FMeasure: fMeasure(precision, recall)}
}

func sortedKeys(expected, actual callset.ArgMap) []string {
	keys := make([]string, 0, len(expected)+len(actual))
	seen := make(map[string]bool, len(expected)+len(actual))
	for k := range expected {
		keys = append(keys, k)
		seen[k] = true
	}
	for k := range actual {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func ref(v callset.Value) *callset.Value {
	return &v
}
