// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/chain"
	"github.com/bitmark-inc/carmarkd/counter"
	"github.com/bitmark-inc/carmarkd/relay"
	"github.com/bitmark-inc/carmarkd/rpc/fixtures"
	"github.com/bitmark-inc/carmarkd/rpc/mocks"
	"github.com/bitmark-inc/carmarkd/rpc/node"
)

func TestNodeInfo(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := mocks.NewMockStatsReader(ctl)
	d := mocks.NewMockBacklogReader(ctl)

	c := counter.Counter(5)
	n := node.New(
		logger.New(fixtures.LogCategory),
		chain.Testing,
		time.Now().Add(-time.Minute),
		"100",
		&c,
		s,
		d,
		func() uint64 { return 17 },
	)

	s.EXPECT().Stats().Return(relay.Stats{Forwarded: 3, Failed: 2, Rejected: 1}).Times(1)
	d.EXPECT().Backlog().Return(uint64(4)).Times(1)

	var reply node.InfoReply
	err := n.Info(&node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Info")
	assert.Equal(t, chain.Testing, reply.Chain, "wrong chain")
	assert.Equal(t, "100", reply.Version, "wrong version")
	assert.Equal(t, c.Uint64(), reply.RPCs, "wrong connection count")
	assert.Equal(t, node.RelayInfo{Forwarded: 3, Failed: 2, Rejected: 1}, reply.Relay, "wrong relay stats")
	assert.Equal(t, node.EventCounts{Published: 17, Backlog: 4}, reply.Events, "wrong event counts")
	assert.NotEqual(t, "", reply.Uptime, "missing uptime")
}
