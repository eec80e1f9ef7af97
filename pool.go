//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

package toolscore

import (
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"trpc.group/trpc-go/toolscore-go/argdiff"
	"trpc.group/trpc-go/toolscore-go/callset"
)

// argDiffTask is one aligned pair whose arguments need comparing.
type argDiffTask struct {
	opIndex  int
	expected callset.ArgMap
	actual   callset.ArgMap
	opt      []argdiff.Option
}

type argDiffParam struct {
	slot    int
	task    *argDiffTask
	results []*argdiff.Diff
	wg      *sync.WaitGroup
}

func (p *argDiffParam) reset() {
	p.slot = 0
	p.task = nil
	p.results = nil
	p.wg = nil
}

var argDiffParamPool = &sync.Pool{
	New: func() any { return new(argDiffParam) },
}

func createArgDiffPool(size int) (*ants.PoolWithFunc, error) {
	if size <= 0 {
		return nil, errors.New("pool size must be greater than 0")
	}
	pool, err := ants.NewPoolWithFunc(size, func(args any) {
		param, ok := args.(*argDiffParam)
		if !ok {
			panic("argument diff pool args type error")
		}
		wg := param.wg
		defer func() {
			wg.Done()
			param.reset()
			argDiffParamPool.Put(param)
		}()
		param.results[param.slot] = argdiff.Compare(
			param.task.expected, param.task.actual, param.task.opt...)
	})
	if err != nil {
		return nil, fmt.Errorf("create argument diff pool: %w", err)
	}
	return pool, nil
}

// runArgDiffs compares every task's argument maps, in parallel when the
// pool size allows it. Results are merged by alignment op index, so
// completion order does not matter.
func runArgDiffs(tasks []*argDiffTask, parallelism int) (map[int]*argdiff.Diff, error) {
	diffs := make(map[int]*argdiff.Diff, len(tasks))
	if len(tasks) == 0 {
		return diffs, nil
	}
	if parallelism <= 1 || len(tasks) == 1 {
		for _, task := range tasks {
			diffs[task.opIndex] = argdiff.Compare(task.expected, task.actual, task.opt...)
		}
		return diffs, nil
	}
	pool, err := createArgDiffPool(parallelism)
	if err != nil {
		return nil, err
	}
	defer pool.Release()
	results := make([]*argdiff.Diff, len(tasks))
	var wg sync.WaitGroup
	for slot, task := range tasks {
		wg.Add(1)
		param := argDiffParamPool.Get().(*argDiffParam)
		param.slot = slot
		param.task = task
		param.results = results
		param.wg = &wg
		if err := pool.Invoke(param); err != nil {
			wg.Done()
			param.reset()
			argDiffParamPool.Put(param)
			return nil, fmt.Errorf("submit argument diff task %d: %w", slot, err)
		}
	}
	wg.Wait()
	for slot, task := range tasks {
		diffs[task.opIndex] = results[slot]
	}
	return diffs, nil
}
