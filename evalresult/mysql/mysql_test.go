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
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/toolscore-go/evalresult"
	"trpc.group/trpc-go/toolscore-go/metric"
	"trpc.group/trpc-go/toolscore-go/status"
)

func newMockManager(t *testing.T) (evalresult.Manager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m, err := New(WithDB(db), WithSkipDBInit(true))
	require.NoError(t, err)
	return m, mock
}

func newResult(id string) *evalresult.EvaluationResult {
	return &evalresult.EvaluationResult{
		ResultID:           id,
		CallSetFingerprint: "abc123",
		CompositeScore:     0.85,
		Status:             status.EvalStatusPassed,
		Threshold:          0.8,
		Metrics: []*metric.Value{
			{Name: metric.SelectionAccuracy, Score: 1.0},
		},
	}
}

func TestNewRequiresDSNOrDB(t *testing.T) {
	_, err := New()
	assert.Error(t, err)
}

func TestNewRunsSchemaInit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS eval_results").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = New(WithDB(db))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveUpserts(t *testing.T) {
	m, mock := newMockManager(t)
	result := newResult("r-1")

	mock.ExpectExec("INSERT INTO eval_results").
		WithArgs("r-1", "abc123", 0.85, int(status.EvalStatusPassed), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, m.Save(context.Background(), result))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveInvalidResult(t *testing.T) {
	m, _ := newMockManager(t)
	assert.Error(t, m.Save(context.Background(), &evalresult.EvaluationResult{}))
}

func TestGet(t *testing.T) {
	m, mock := newMockManager(t)
	payload, err := json.Marshal(newResult("r-1"))
	require.NoError(t, err)

	mock.ExpectQuery("SELECT payload FROM eval_results").
		WithArgs("r-1").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))

	got, err := m.Get(context.Background(), "r-1")
	require.NoError(t, err)
	assert.Equal(t, "r-1", got.ResultID)
	assert.Equal(t, 0.85, got.CompositeScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMissing(t *testing.T) {
	m, mock := newMockManager(t)

	mock.ExpectQuery("SELECT payload FROM eval_results").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	_, err := m.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestList(t *testing.T) {
	m, mock := newMockManager(t)

	mock.ExpectQuery("SELECT result_id FROM eval_results ORDER BY result_id").
		WillReturnRows(sqlmock.NewRows([]string{"result_id"}).AddRow("a").AddRow("b"))

	ids, err := m.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestTablePrefix(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m, err := New(WithDB(db), WithSkipDBInit(true), WithTablePrefix("toolscore_"))
	require.NoError(t, err)

	mock.ExpectQuery("SELECT result_id FROM toolscore_eval_results").
		WillReturnRows(sqlmock.NewRows([]string{"result_id"}))

	_, err = m.List(context.Background())
	assert.NoError(t, err)
}

func TestIsDuplicateEntry(t *testing.T) {
	assert.True(t, IsDuplicateEntry(&gomysql.MySQLError{Number: 1062}))
	assert.False(t, IsDuplicateEntry(&gomysql.MySQLError{Number: 1045}))
	assert.False(t, IsDuplicateEntry(errors.New("other")))
}
