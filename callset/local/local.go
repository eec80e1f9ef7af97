//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

// Package local provides a local file storage implementation for call sets.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"trpc.group/trpc-go/toolscore-go/callset"
	"trpc.group/trpc-go/toolscore-go/epochtime"
)

// manager implements the callset.Manager interface using local file storage.
type manager struct {
	baseDir string
	mu      sync.Mutex
}

// New creates a new local file call set manager.
func New(opt ...callset.Option) callset.Manager {
	opts := callset.NewOptions(opt...)
	return &manager{baseDir: opts.BaseDir}
}

// Create stores a new call set as a JSON file. Creating an existing id is an error.
func (m *manager) Create(ctx context.Context, set *callset.CallSet) error {
	_ = ctx
	if err := set.Validate(); err != nil {
		return fmt.Errorf("validate call set: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	path := m.setPath(set.CallSetID)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("call set %s already exists", set.CallSetID)
	}
	if set.CreationTimestamp == nil {
		set.CreationTimestamp = epochtime.Now()
	}
	return m.write(path, set)
}

// Get retrieves a call set by id from local file.
func (m *manager) Get(ctx context.Context, callSetID string) (*callset.CallSet, error) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	path := m.setPath(callSetID)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: call set %s", os.ErrNotExist, callSetID)
		}
		return nil, err
	}
	defer f.Close()
	var set callset.CallSet
	if err := json.NewDecoder(f).Decode(&set); err != nil {
		return nil, fmt.Errorf("decode call set %s: %w", callSetID, err)
	}
	return &set, nil
}

// List returns all stored call set ids sorted lexicographically.
func (m *manager) List(ctx context.Context) ([]string, error) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	entries, err := os.ReadDir(m.baseDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, callset.DefaultCallSetExtension) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, callset.DefaultCallSetExtension))
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes a call set file by id.
func (m *manager) Delete(ctx context.Context, callSetID string) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	path := m.setPath(callSetID)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: call set %s", os.ErrNotExist, callSetID)
		}
		return err
	}
	return nil
}

func (m *manager) setPath(callSetID string) string {
	return filepath.Join(m.baseDir, callSetID+callset.DefaultCallSetExtension)
}

// write stores the set under path using a temp file plus rename.
func (m *manager) write(path string, set *callset.CallSet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(set); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
