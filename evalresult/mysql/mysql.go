//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

// Package mysql provides a MySQL storage implementation for evaluation results.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-sql-driver/mysql"

	"trpc.group/trpc-go/toolscore-go/evalresult"
)

var _ evalresult.Manager = (*manager)(nil)

type manager struct {
	opts  options
	db    *sql.DB
	table string
}

// New creates a MySQL-backed evaluation result manager.
func New(opt ...Option) (evalresult.Manager, error) {
	opts := newOptions(opt...)
	db := opts.db
	if db == nil {
		if opts.dsn == "" {
			return nil, errors.New("mysql dsn is empty")
		}
		var err error
		db, err = sql.Open("mysql", opts.dsn)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
	}
	m := &manager{
		opts:  *opts,
		db:    db,
		table: opts.tablePrefix + tableNameResults,
	}
	if !opts.skipDBInit {
		ctx, cancel := context.WithTimeout(context.Background(), opts.initTimeout)
		defer cancel()
		if err := m.ensureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init database: %w", err)
		}
	}
	return m, nil
}

// Close releases the underlying connection pool.
func (m *manager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}

// Save upserts an evaluation result into MySQL. The full result is stored as
// a JSON payload next to the queryable columns.
func (m *manager) Save(ctx context.Context, result *evalresult.EvaluationResult) error {
	if err := result.Validate(); err != nil {
		return fmt.Errorf("validate result: %w", err)
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result %s: %w", result.ResultID, err)
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (result_id, callset_fingerprint, composite_score, eval_status, payload)
		 VALUES (?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
		   callset_fingerprint = VALUES(callset_fingerprint),
		   composite_score = VALUES(composite_score),
		   eval_status = VALUES(eval_status),
		   payload = VALUES(payload)`,
		m.table)
	if _, err := m.db.ExecContext(ctx, query,
		result.ResultID, result.CallSetFingerprint, result.CompositeScore,
		int(result.Status), payload); err != nil {
		return fmt.Errorf("save result %s: %w", result.ResultID, err)
	}
	return nil
}

// Get retrieves an evaluation result by id.
// Returns os.ErrNotExist if the result is not found.
func (m *manager) Get(ctx context.Context, resultID string) (*evalresult.EvaluationResult, error) {
	query := fmt.Sprintf(`SELECT payload FROM %s WHERE result_id = ?`, m.table)
	var payload []byte
	err := m.db.QueryRowContext(ctx, query, resultID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: result %s", os.ErrNotExist, resultID)
	}
	if err != nil {
		return nil, fmt.Errorf("get result %s: %w", resultID, err)
	}
	var result evalresult.EvaluationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", resultID, err)
	}
	return &result, nil
}

// List returns all stored result ids sorted lexicographically.
func (m *manager) List(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT result_id FROM %s ORDER BY result_id`, m.table)
	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan result id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return ids, nil
}

// IsDuplicateEntry reports whether the error is a MySQL duplicate entry error.
func IsDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	return mysqlErr.Number == mysqlErrDuplicateEntry
}
