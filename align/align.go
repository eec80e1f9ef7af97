//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

// Package align computes minimum edit distance alignments between tool name sequences.
package align

// OpKind identifies a single edit operation in an alignment.
type OpKind int

const (
	// OpMatch pairs an expected position with an actual position holding the same name.
	OpMatch OpKind = iota
	// OpSubstitute pairs an expected position with an actual position holding a different name.
	OpSubstitute
	// OpInsert consumes an actual position with no expected counterpart.
	OpInsert
	// OpDelete consumes an expected position with no actual counterpart.
	OpDelete
)

// String returns the wire name of the operation kind.
func (k OpKind) String() string {
	switch k {
	case OpMatch:
		return "match"
	case OpSubstitute:
		return "substitute"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// noIndex marks the absent side of an insert or delete operation.
const noIndex = -1

// Op is a single edit operation. ExpectedIndex is -1 for inserts and
// ActualIndex is -1 for deletes.
type Op struct {
	// Kind is the operation kind.
	Kind OpKind `json:"kind"`
	// ExpectedIndex is the consumed expected position, -1 for inserts.
	ExpectedIndex int `json:"expectedIndex"`
	// ActualIndex is the consumed actual position, -1 for deletes.
	ActualIndex int `json:"actualIndex"`
	// Similarity is the name similarity for substitute operations in [0, 1].
	Similarity float64 `json:"similarity,omitempty"`
}

// Alignment is an ordered sequence of edit operations that consumes every
// expected index and every actual index exactly once.
type Alignment struct {
	// ExpectedNames is the expected tool name sequence.
	ExpectedNames []string `json:"expectedNames"`
	// ActualNames is the actual tool name sequence.
	ActualNames []string `json:"actualNames"`
	// Ops lists the edit operations in sequence order.
	Ops []Op `json:"ops"`
}

// EditDistance returns the count of non-match operations.
func (a *Alignment) EditDistance() int {
	dist := 0
	for _, op := range a.Ops {
		if op.Kind != OpMatch {
			dist++
		}
	}
	return dist
}

// SequenceAccuracy returns 1 - edit_distance / max(len(expected), len(actual), 1).
func (a *Alignment) SequenceAccuracy() float64 {
	maxLen := max(len(a.ExpectedNames), len(a.ActualNames), 1)
	return 1.0 - float64(a.EditDistance())/float64(maxLen)
}

// Pairs returns the match and substitute operations in sequence order.
func (a *Alignment) Pairs() []Op {
	pairs := make([]Op, 0, len(a.Ops))
	for _, op := range a.Ops {
		if op.Kind == OpMatch || op.Kind == OpSubstitute {
			pairs = append(pairs, op)
		}
	}
	return pairs
}

// Align computes a minimum edit distance alignment between two tool name
// sequences using the classic Levenshtein dynamic program with unit costs.
// Traceback is deterministic: at equal cost it prefers the diagonal move,
// then delete, then insert.
func Align(expectedNames, actualNames []string) *Alignment {
	n := len(expectedNames)
	m := len(actualNames)
	// dist[i][j] is the edit distance between the first i expected names and
	// the first j actual names.
	dist := make([][]int, n+1)
	for i := range dist {
		dist[i] = make([]int, m+1)
		dist[i][0] = i
	}
	for j := 0; j <= m; j++ {
		dist[0][j] = j
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			substCost := 1
			if expectedNames[i-1] == actualNames[j-1] {
				substCost = 0
			}
			dist[i][j] = min(
				dist[i-1][j-1]+substCost,
				dist[i-1][j]+1,
				dist[i][j-1]+1,
			)
		}
	}
	ops := traceback(dist, expectedNames, actualNames)
	return &Alignment{
		ExpectedNames: expectedNames,
		ActualNames:   actualNames,
		Ops:           ops,
	}
}

// traceback reconstructs one optimal path from the filled distance table.
func traceback(dist [][]int, expectedNames, actualNames []string) []Op {
	i := len(expectedNames)
	j := len(actualNames)
	var reversed []Op
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && expectedNames[i-1] == actualNames[j-1] && dist[i][j] == dist[i-1][j-1]:
			reversed = append(reversed, Op{Kind: OpMatch, ExpectedIndex: i - 1, ActualIndex: j - 1, Similarity: 1})
			i--
			j--
		case i > 0 && j > 0 && dist[i][j] == dist[i-1][j-1]+1:
			reversed = append(reversed, Op{
				Kind:          OpSubstitute,
				ExpectedIndex: i - 1,
				ActualIndex:   j - 1,
				Similarity:    Similarity(expectedNames[i-1], actualNames[j-1]),
			})
			i--
			j--
		case i > 0 && dist[i][j] == dist[i-1][j]+1:
			reversed = append(reversed, Op{Kind: OpDelete, ExpectedIndex: i - 1, ActualIndex: noIndex})
			i--
		default:
			reversed = append(reversed, Op{Kind: OpInsert, ExpectedIndex: noIndex, ActualIndex: j - 1})
			j--
		}
	}
	ops := make([]Op, len(reversed))
	for k := range reversed {
		ops[k] = reversed[len(reversed)-1-k]
	}
	return ops
}
