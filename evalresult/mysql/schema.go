//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

package mysql

import (
	"context"
	"fmt"
)

const (
	tableNameResults = "eval_results"

	mysqlErrDuplicateEntry = 1062
)

const createResultsTable = `CREATE TABLE IF NOT EXISTS %s (
  id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
  result_id VARCHAR(128) NOT NULL,
  callset_fingerprint VARCHAR(64) NOT NULL DEFAULT '',
  composite_score DOUBLE NOT NULL DEFAULT 0,
  eval_status INT NOT NULL DEFAULT 0,
  payload MEDIUMBLOB NOT NULL,
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
  PRIMARY KEY (id),
  UNIQUE KEY uk_result_id (result_id),
  KEY idx_fingerprint (callset_fingerprint)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

func (m *manager) ensureSchema(ctx context.Context) error {
	stmt := fmt.Sprintf(createResultsTable, m.table)
	if _, err := m.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create table %s: %w", m.table, err)
	}
	return nil
}
