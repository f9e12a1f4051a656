// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/bitmark-inc/carmarkd/background"
)

type ticker struct {
	ticks    int64
	finished bool
}

func (state *ticker) Run(args interface{}, shutdown <-chan struct{}) {
	interval := args.(time.Duration)
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(interval):
			atomic.AddInt64(&state.ticks, 1)
		}
	}
	state.finished = true
}

func TestBackground(t *testing.T) {
	proc1 := &ticker{}
	proc2 := &ticker{}

	p := background.Start(background.Processes{proc1, proc2}, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	for i, proc := range []*ticker{proc1, proc2} {
		if !proc.finished {
			t.Errorf("%d: stop returned before process finished", i)
		}
		if 0 == atomic.LoadInt64(&proc.ticks) {
			t.Errorf("%d: process never ran", i)
		}
	}

	// second stop is harmless
	p.Stop()
}
