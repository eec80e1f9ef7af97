//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

// Package local provides a local file storage implementation for evaluation results.
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

	"trpc.group/trpc-go/toolscore-go/evalresult"
)

// manager implements the evalresult.Manager interface using local file storage.
type manager struct {
	baseDir string
	mu      sync.Mutex
}

// New creates a new local file evaluation result manager.
func New(opt ...evalresult.Option) evalresult.Manager {
	opts := evalresult.NewOptions(opt...)
	return &manager{baseDir: opts.BaseDir}
}

// Save stores an evaluation result to a local file.
func (m *manager) Save(ctx context.Context, result *evalresult.EvaluationResult) error {
	_ = ctx
	if err := result.Validate(); err != nil {
		return fmt.Errorf("validate result: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := os.MkdirAll(m.baseDir, 0o755); err != nil {
		return err
	}
	path := m.resultPath(result.ResultID)
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
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

// Get retrieves an evaluation result by id from a local file.
func (m *manager) Get(ctx context.Context, resultID string) (*evalresult.EvaluationResult, error) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	path := m.resultPath(resultID)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: result %s", os.ErrNotExist, resultID)
		}
		return nil, err
	}
	defer f.Close()
	var result evalresult.EvaluationResult
	if err := json.NewDecoder(f).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", resultID, err)
	}
	return &result, nil
}

// List returns all stored result ids sorted lexicographically.
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
		if !strings.HasSuffix(name, evalresult.DefaultResultExtension) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, evalresult.DefaultResultExtension))
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *manager) resultPath(resultID string) string {
	return filepath.Join(m.baseDir, resultID+evalresult.DefaultResultExtension)
}
