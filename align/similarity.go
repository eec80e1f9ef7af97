//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

package align

import "strings"

// SimilarNameThreshold is the similarity above which two tool names are
// considered possibly equivalent, e.g. "search_web" vs "web_search".
const SimilarNameThreshold = 0.6

// Similarity returns a case-insensitive similarity between two tool names in
// [0, 1], computed as 2*LCS / (len(a)+len(b)).
func Similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return 2 * float64(lcsLength(a, b)) / float64(len(a)+len(b))
}

// lcsLength computes the longest common subsequence length with a rolling row.
func lcsLength(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
