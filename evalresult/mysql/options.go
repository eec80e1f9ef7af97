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
	"database/sql"
	"time"
)

const defaultInitTimeout = 10 * time.Second

type options struct {
	dsn         string
	db          *sql.DB
	tablePrefix string
	skipDBInit  bool
	initTimeout time.Duration
}

// Option configures the MySQL result manager.
type Option func(*options)

func newOptions(opt ...Option) *options {
	opts := &options{
		initTimeout: defaultInitTimeout,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// WithDSN sets the MySQL data source name used to open the connection.
func WithDSN(dsn string) Option {
	return func(o *options) {
		o.dsn = dsn
	}
}

// WithDB supplies an existing connection pool instead of opening one from
// the DSN. The caller keeps ownership of the pool.
func WithDB(db *sql.DB) Option {
	return func(o *options) {
		o.db = db
	}
}

// WithTablePrefix prepends a prefix to the table name, allowing multiple
// deployments to share one database.
func WithTablePrefix(prefix string) Option {
	return func(o *options) {
		o.tablePrefix = prefix
	}
}

// WithSkipDBInit skips table creation on startup. Use it when the schema
// is managed externally or the runtime account lacks DDL privileges.
func WithSkipDBInit(skip bool) Option {
	return func(o *options) {
		o.skipDBInit = skip
	}
}

// WithInitTimeout bounds the schema initialization on startup.
func WithInitTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.initTimeout = d
		}
	}
}
