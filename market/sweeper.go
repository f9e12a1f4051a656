// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"time"
)

// DefaultSweepInterval - time between expiry scans
const DefaultSweepInterval = time.Minute

// Sweeper - background process expiring listings
type Sweeper struct {
	market   *Market
	interval time.Duration
}

// NewSweeper - create the expiry process, zero interval selects the default
func NewSweeper(m *Market, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		market:   m,
		interval: interval,
	}
}

// Run - expiry loop
func (s *Sweeper) Run(args interface{}, shutdown <-chan struct{}) {
	log := s.market.log
	log.Info("sweeper starting…")

	ticker := time.NewTicker(s.interval)
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			n, err := s.market.ExpireListings(s.market.now())
			if nil != err {
				log.Errorf("sweep error: %s", err)
			} else if 0 != n {
				log.Infof("swept: %d listings", n)
			}
		}
	}
	ticker.Stop()
	log.Info("sweeper stopped")
}
