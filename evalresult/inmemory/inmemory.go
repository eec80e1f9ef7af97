//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory storage implementation for evaluation results.
package inmemory

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"trpc.group/trpc-go/toolscore-go/evalresult"
	"trpc.group/trpc-go/toolscore-go/internal/clone"
)

// manager implements the evalresult.Manager interface using in-memory storage.
// Each API returns deep-cloned objects to avoid accidental mutation by callers.
type manager struct {
	mu      sync.RWMutex
	results map[string]*evalresult.EvaluationResult
}

// New creates a new in-memory evaluation result manager.
func New() evalresult.Manager {
	return &manager{results: make(map[string]*evalresult.EvaluationResult)}
}

// Save stores an evaluation result. Saving an existing id overwrites it.
func (m *manager) Save(ctx context.Context, result *evalresult.EvaluationResult) error {
	_ = ctx
	if err := result.Validate(); err != nil {
		return fmt.Errorf("validate result: %w", err)
	}
	cloned, err := clone.Clone(result)
	if err != nil {
		return fmt.Errorf("clone result %s: %w", result.ResultID, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[result.ResultID] = cloned
	return nil
}

// Get retrieves an evaluation result by id.
// Returns os.ErrNotExist if the result is not found.
func (m *manager) Get(ctx context.Context, resultID string) (*evalresult.EvaluationResult, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()
	result, ok := m.results[resultID]
	if !ok {
		return nil, fmt.Errorf("%w: result %s", os.ErrNotExist, resultID)
	}
	cloned, err := clone.Clone(result)
	if err != nil {
		return nil, fmt.Errorf("clone result %s: %w", resultID, err)
	}
	return cloned, nil
}

// List returns all stored result ids sorted lexicographically.
func (m *manager) List(ctx context.Context) ([]string, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.results))
	for id := range m.results {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
