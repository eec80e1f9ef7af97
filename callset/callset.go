//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

// Package callset defines normalized tool call records and gold call sets.
package callset

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"trpc.group/trpc-go/toolscore-go/epochtime"
)

// ArgMap maps argument names to JSON-like values. Key order is irrelevant.
type ArgMap map[string]Value

// Equal reports deep equality between two argument maps.
func (m ArgMap) Equal(other ArgMap) bool {
	return Object(m).Equal(Object(other))
}

// Clone returns a deep copy of the argument map.
func (m ArgMap) Clone() ArgMap {
	if m == nil {
		return nil
	}
	out := make(ArgMap, len(m))
	for k, v := range m {
		out[k] = v.Clone()
	}
	return out
}

// Call is a single normalized tool call record. It is immutable once
// constructed; NewCall deep-copies the argument map.
type Call struct {
	// Tool is the tool or function name. Never empty.
	Tool string `json:"tool"`
	// Args holds the call arguments.
	Args ArgMap `json:"args,omitempty"`
	// Schema holds optional per-argument validation rules, keyed by argument name.
	Schema map[string]*ArgSchema `json:"schema,omitempty"`
	// Description is an optional human-readable note attached by the gold set author.
	Description string `json:"description,omitempty"`
}

// NewCall builds an immutable call record. The tool name must be non-empty.
func NewCall(tool string, args ArgMap) (*Call, error) {
	if tool == "" {
		return nil, errors.New("tool name is empty")
	}
	return &Call{Tool: tool, Args: args.Clone()}, nil
}

// Validate checks the structural invariants of the call record.
func (c *Call) Validate() error {
	if c == nil {
		return errors.New("call is nil")
	}
	if c.Tool == "" {
		return errors.New("tool name is empty")
	}
	for name, schema := range c.Schema {
		if err := schema.Check(); err != nil {
			return fmt.Errorf("schema for argument %s: %w", name, err)
		}
	}
	return nil
}

// ValidateCalls checks every record in a call list, reporting the first offender.
func ValidateCalls(calls []*Call) error {
	for i, call := range calls {
		if err := call.Validate(); err != nil {
			return fmt.Errorf("call %d: %w", i, err)
		}
	}
	return nil
}

// Names returns the ordered tool name sequence of a call list.
func Names(calls []*Call) []string {
	names := make([]string, len(calls))
	for i, call := range calls {
		names[i] = call.Tool
	}
	return names
}

// CallSet is a named gold standard: the ordered calls considered correct for a task.
type CallSet struct {
	// CallSetID uniquely identifies this call set.
	CallSetID string `json:"callSetId,omitempty"`
	// Name is a human-readable name for the set.
	Name string `json:"name,omitempty"`
	// Calls contains the expected calls in order.
	Calls []*Call `json:"calls,omitempty"`
	// CreationTimestamp when this call set was created.
	CreationTimestamp *epochtime.EpochTime `json:"creationTimestamp,omitempty"`
}

// Validate checks the call set and every record in it.
func (s *CallSet) Validate() error {
	if s == nil {
		return errors.New("call set is nil")
	}
	if s.CallSetID == "" {
		return errors.New("call set id is empty")
	}
	return ValidateCalls(s.Calls)
}

// Fingerprint returns a hex sha256 over a canonical rendering of the given
// calls. Persisted results carry it so a stored score can be tied back to the
// exact gold standard that produced it.
func Fingerprint(calls []*Call) string {
	buf := make([]byte, 0, 256)
	for _, call := range calls {
		buf = append(buf, call.Tool...)
		buf = append(buf, 0)
		buf = Object(call.Args).canonicalAppend(buf)
		buf = append(buf, 0)
	}
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:])
}

// Manager defines the interface for managing call sets.
type Manager interface {
	// Create stores a new call set.
	Create(ctx context.Context, set *CallSet) error
	// Get retrieves a call set by id.
	Get(ctx context.Context, callSetID string) (*CallSet, error)
	// List returns all stored call set ids.
	List(ctx context.Context) ([]string, error)
	// Delete removes a call set by id.
	Delete(ctx context.Context, callSetID string) error
}
