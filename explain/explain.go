//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

// Package explain turns alignments and argument diffs into categorized issues and tips.
package explain

import (
	"fmt"
	"sort"

	"trpc.group/trpc-go/toolscore-go/align"
	"trpc.group/trpc-go/toolscore-go/argdiff"
	"trpc.group/trpc-go/toolscore-go/metric"
)

// Category classifies an issue.
type Category int

const (
	// CategoryMissing marks an expected tool that was never matched.
	CategoryMissing Category = iota
	// CategoryExtra marks an actual tool not expected at that point.
	CategoryExtra
	// CategoryMismatch marks an aligned pair that diverges by name or arguments.
	CategoryMismatch
	// CategoryScorerUnavailable marks a degraded injected scorer, recorded for visibility.
	CategoryScorerUnavailable
)

// String returns the wire name of the category.
func (c Category) String() string {
	switch c {
	case CategoryMissing:
		return "missing"
	case CategoryExtra:
		return "extra"
	case CategoryMismatch:
		return "mismatch"
	case CategoryScorerUnavailable:
		return "scorer_unavailable"
	default:
		return "unknown"
	}
}

// MismatchKind refines mismatch issues.
type MismatchKind int

const (
	// MismatchNone applies to non-mismatch issues.
	MismatchNone MismatchKind = iota
	// MismatchName marks an aligned pair whose tool names differ.
	MismatchName
	// MismatchArgs marks a name-equal pair whose arguments diverge.
	MismatchArgs
)

// String returns the wire name of the mismatch kind.
func (k MismatchKind) String() string {
	switch k {
	case MismatchName:
		return "name"
	case MismatchArgs:
		return "args"
	default:
		return "none"
	}
}

// Issue is a single categorized finding.
type Issue struct {
	// Category classifies the issue.
	Category Category `json:"category"`
	// Kind refines mismatch issues.
	Kind MismatchKind `json:"kind,omitempty"`
	// Position is the original sequence position the issue refers to.
	Position int `json:"position"`
	// ExpectedTool is the expected tool name when one exists.
	ExpectedTool string `json:"expectedTool,omitempty"`
	// ActualTool is the actual tool name when one exists.
	ActualTool string `json:"actualTool,omitempty"`
	// Similarity is the name similarity for name mismatches.
	Similarity float64 `json:"similarity,omitempty"`
	// Message is the human readable finding.
	Message string `json:"message"`
	// ArgEntries carries the offending diff entries for argument mismatches.
	ArgEntries []argdiff.Entry `json:"argEntries,omitempty"`
}

// Tip is a remediation hint derived from deterministic heuristics.
type Tip struct {
	// Message is the hint text.
	Message string `json:"message"`
}

// Report is the explainer output attached to an evaluation result.
type Report struct {
	// Issues lists findings in display order, most severe first.
	Issues []Issue `json:"issues,omitempty"`
	// Tips lists remediation hints.
	Tips []Tip `json:"tips,omitempty"`
}

// recallMargin is the precision/recall gap beyond which an argument tip fires.
const recallMargin = 0.05

// Explain derives issues and tips purely from the alignment and argument
// diffs. It never inspects anything outside the shared evaluation input.
func Explain(in *metric.Input) *Report {
	r := &Report{}
	r.Issues = collectIssues(in)
	r.Tips = collectTips(in, r.Issues)
	sortIssues(r.Issues)
	return r
}

// collectIssues emits one issue per delete, insert, name-divergent pair, and
// name-equal pair with a dirty argument diff.
func collectIssues(in *metric.Input) []Issue {
	var issues []Issue
	for idx, op := range in.Alignment.Ops {
		switch op.Kind {
		case align.OpDelete:
			name := in.Alignment.ExpectedNames[op.ExpectedIndex]
			issues = append(issues, Issue{
				Category:     CategoryMissing,
				Position:     op.ExpectedIndex,
				ExpectedTool: name,
				Message:      fmt.Sprintf("expected call %d to %q was never made", op.ExpectedIndex+1, name),
			})
		case align.OpInsert:
			name := in.Alignment.ActualNames[op.ActualIndex]
			issues = append(issues, Issue{
				Category:   CategoryExtra,
				Position:   op.ActualIndex,
				ActualTool: name,
				Message:    fmt.Sprintf("unexpected call %d to %q", op.ActualIndex+1, name),
			})
		case align.OpSubstitute:
			expected := in.Alignment.ExpectedNames[op.ExpectedIndex]
			actual := in.Alignment.ActualNames[op.ActualIndex]
			issues = append(issues, Issue{
				Category:     CategoryMismatch,
				Kind:         MismatchName,
				Position:     op.ExpectedIndex,
				ExpectedTool: expected,
				ActualTool:   actual,
				Similarity:   op.Similarity,
				Message:      fmt.Sprintf("position %d: expected %q but got %q", op.ExpectedIndex+1, expected, actual),
			})
		case align.OpMatch:
			diff, ok := in.Diffs[idx]
			if !ok || diff.Clean() {
				continue
			}
			name := in.Alignment.ExpectedNames[op.ExpectedIndex]
			var offending []argdiff.Entry
			for _, entry := range diff.Entries {
				if entry.Kind != argdiff.EntryMatch && entry.Kind != argdiff.EntrySchemaViolation {
					offending = append(offending, entry)
				}
			}
			issues = append(issues, Issue{
				Category:     CategoryMismatch,
				Kind:         MismatchArgs,
				Position:     op.ExpectedIndex,
				ExpectedTool: name,
				ActualTool:   name,
				Message:      fmt.Sprintf("position %d: %q called with diverging arguments", op.ExpectedIndex+1, name),
				ArgEntries:   offending,
			})
		}
	}
	return issues
}

// collectTips applies the deterministic tip heuristics.
func collectTips(in *metric.Input, issues []Issue) []Tip {
	var tips []Tip
	for _, issue := range issues {
		if issue.Category == CategoryMismatch && issue.Kind == MismatchName &&
			issue.Similarity >= align.SimilarNameThreshold {
			tips = append(tips, Tip{Message: fmt.Sprintf(
				"%q and %q look like the same tool under different names; consider semantic equivalence checking or renaming",
				issue.ExpectedTool, issue.ActualTool)})
			break
		}
	}
	if precision, recall, ok := aggregateArgScores(in); ok {
		if recall+recallMargin < precision {
			tips = append(tips, Tip{Message: "argument recall trails precision: the agent is missing required arguments"})
		}
		if precision+recallMargin < recall {
			tips = append(tips, Tip{Message: "argument precision trails recall: the agent is passing extra or unexpected arguments"})
		}
	}
	if redundant := metric.ComputeRedundantRate(in); redundant.Score > 0 {
		count := redundant.Details["redundant_count"]
		tips = append(tips, Tip{Message: fmt.Sprintf(
			"%v call(s) exactly duplicate an earlier call; consider caching results or tightening the loop", count)})
	}
	return tips
}

// aggregateArgScores averages precision and recall across the evaluated diffs.
func aggregateArgScores(in *metric.Input) (precision, recall float64, ok bool) {
	if len(in.Diffs) == 0 {
		return 0, 0, false
	}
	for _, diff := range in.Diffs {
		precision += diff.Score.Precision
		recall += diff.Score.Recall
	}
	n := float64(len(in.Diffs))
	return precision / n, recall / n, true
}

// sortIssues orders issues for display: missing calls and name mismatches
// first, then argument mismatches, then extra calls, ties broken by position.
func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		ri, rj := severityRank(issues[i]), severityRank(issues[j])
		if ri != rj {
			return ri < rj
		}
		return issues[i].Position < issues[j].Position
	})
}

func severityRank(issue Issue) int {
	switch {
	case issue.Category == CategoryMissing:
		return 0
	case issue.Category == CategoryMismatch && issue.Kind == MismatchName:
		return 0
	case issue.Category == CategoryMismatch && issue.Kind == MismatchArgs:
		return 1
	case issue.Category == CategoryExtra:
		return 2
	default:
		return 3
	}
}
