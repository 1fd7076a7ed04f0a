// Copyright (c) 2024, The Rafko Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rafkopool

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunExecutesAllWorkItems(t *testing.T) {
	p := New(4)
	defer p.Close()
	var count int64
	work := make([]WorkFunc, 50)
	for i := range work {
		work[i] = func() { atomic.AddInt64(&count, 1) }
	}
	p.Run(work)
	assert.EqualValues(t, 50, count)
}

func TestRunWithSizeOneIsSynchronous(t *testing.T) {
	p := New(1)
	var order []int
	for i := 0; i < 5; i++ {
		idx := i
		p.Run([]WorkFunc{func() { order = append(order, idx) }})
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestRunDistributesAcrossMultipleWorkers(t *testing.T) {
	p := New(3)
	defer p.Close()
	seen := make(chan int, 9)
	work := make([]WorkFunc, 9)
	for i := range work {
		work[i] = func() { seen <- 1; time.Sleep(time.Millisecond) }
	}
	p.Run(work)
	close(seen)
	total := 0
	for range seen {
		total++
	}
	assert.Equal(t, 9, total)
}

func TestRunIsSafeForConcurrentCallers(t *testing.T) {
	shared := New(2)
	defer shared.Close()

	var total int64
	outer := New(4)
	defer outer.Close()
	outerWork := make([]WorkFunc, 8)
	for i := range outerWork {
		outerWork[i] = func() {
			inner := make([]WorkFunc, 5)
			for j := range inner {
				inner[j] = func() { atomic.AddInt64(&total, 1) }
			}
			shared.Run(inner)
		}
	}
	outer.Run(outerWork)
	assert.EqualValues(t, 40, total)
}

func TestInnerLoopBoundIsIntegerSquareRoot(t *testing.T) {
	assert.Equal(t, 1, InnerLoopBound(1))
	assert.Equal(t, 2, InnerLoopBound(4))
	assert.Equal(t, 3, InnerLoopBound(9))
	assert.Equal(t, 3, InnerLoopBound(11))
	assert.Equal(t, 4, InnerLoopBound(16))
}

func TestTimerAccumulatesAndAverages(t *testing.T) {
	var tm Timer
	tm.Start()
	time.Sleep(time.Millisecond)
	tm.Stop()
	tm.Start()
	time.Sleep(time.Millisecond)
	tm.Stop()
	assert.Equal(t, 2, tm.N())
	assert.Greater(t, tm.Total(), time.Duration(0))
	assert.Equal(t, tm.Total()/2, tm.Avg())
}

func TestTimerResetClearsState(t *testing.T) {
	var tm Timer
	tm.Start()
	tm.Stop()
	tm.Reset()
	assert.Equal(t, 0, tm.N())
	assert.Equal(t, time.Duration(0), tm.Total())
	assert.Equal(t, time.Duration(0), tm.Avg())
}
