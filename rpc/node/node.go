// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/counter"
	"github.com/bitmark-inc/carmarkd/relay"
	"github.com/bitmark-inc/carmarkd/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// StatsReader - relay counters
type StatsReader interface {
	Stats() relay.Stats
}

// BacklogReader - events waiting for the publisher
type BacklogReader interface {
	Backlog() uint64
}

// Node - type for RPC calls
type Node struct {
	Log       *logger.L
	Limiter   *rate.Limiter
	Chain     string
	Start     time.Time
	Version   string
	Relay     StatsReader
	Events    BacklogReader
	Published func() uint64
	counter   *counter.Counter
}

// New - create the node RPC service
func New(log *logger.L, chainName string, start time.Time, version string, counter *counter.Counter, stats StatsReader, events BacklogReader, published func() uint64) *Node {
	return &Node{
		Log:       log,
		Limiter:   rate.NewLimiter(rateLimitNode, rateBurstNode),
		Chain:     chainName,
		Start:     start,
		Version:   version,
		Relay:     stats,
		Events:    events,
		Published: published,
		counter:   counter,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain   string      `json:"chain"`
	Version string      `json:"version"`
	Uptime  string      `json:"uptime"`
	RPCs    uint64      `json:"rpcs"`
	Relay   RelayInfo   `json:"relay"`
	Events  EventCounts `json:"events"`
}

// RelayInfo - meta request outcomes since start
type RelayInfo struct {
	Forwarded uint64 `json:"forwarded"`
	Failed    uint64 `json:"failed"`
	Rejected  uint64 `json:"rejected"`
}

// EventCounts - event feed totals
type EventCounts struct {
	Published uint64 `json:"published"`
	Backlog   uint64 `json:"backlog"`
}

// Info - return some information about this node
func (node *Node) Info(arguments *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Chain = node.Chain
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.RPCs = node.counter.Uint64()

	stats := node.Relay.Stats()
	reply.Relay = RelayInfo{
		Forwarded: stats.Forwarded,
		Failed:    stats.Failed,
		Rejected:  stats.Rejected,
	}

	reply.Events.Backlog = node.Events.Backlog()
	if nil != node.Published {
		reply.Events.Published = node.Published()
	}

	return nil
}
