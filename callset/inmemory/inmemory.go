//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory storage implementation for call sets.
package inmemory

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"trpc.group/trpc-go/toolscore-go/callset"
	"trpc.group/trpc-go/toolscore-go/epochtime"
	"trpc.group/trpc-go/toolscore-go/internal/clone"
)

// manager implements the callset.Manager interface using in-memory storage.
// Each API returns deep-cloned objects to avoid accidental mutation by callers.
type manager struct {
	mu       sync.RWMutex
	callSets map[string]*callset.CallSet
}

// New creates a new in-memory call set manager.
func New() callset.Manager {
	return &manager{
		callSets: make(map[string]*callset.CallSet),
	}
}

// Create stores a new call set. Creating an existing id is an error.
func (m *manager) Create(ctx context.Context, set *callset.CallSet) error {
	_ = ctx
	if err := set.Validate(); err != nil {
		return fmt.Errorf("validate call set: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.callSets[set.CallSetID]; ok {
		return fmt.Errorf("call set %s already exists", set.CallSetID)
	}
	cloned, err := clone.Clone(set)
	if err != nil {
		return fmt.Errorf("clone call set %s: %w", set.CallSetID, err)
	}
	if cloned.CreationTimestamp == nil {
		cloned.CreationTimestamp = epochtime.Now()
	}
	m.callSets[set.CallSetID] = cloned
	return nil
}

// Get returns a call set by id. If the set does not exist, os.ErrNotExist is returned.
func (m *manager) Get(ctx context.Context, callSetID string) (*callset.CallSet, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, ok := m.callSets[callSetID]
	if !ok {
		return nil, fmt.Errorf("%w: call set %s", os.ErrNotExist, callSetID)
	}
	cloned, err := clone.Clone(set)
	if err != nil {
		return nil, fmt.Errorf("clone call set %s: %w", callSetID, err)
	}
	return cloned, nil
}

// List returns all stored call set ids sorted lexicographically.
func (m *manager) List(ctx context.Context) ([]string, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.callSets))
	for id := range m.callSets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes a call set by id. Deleting a missing set is an error.
func (m *manager) Delete(ctx context.Context, callSetID string) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.callSets[callSetID]; !ok {
		return fmt.Errorf("%w: call set %s", os.ErrNotExist, callSetID)
	}
	delete(m.callSets, callSetID)
	return nil
}
