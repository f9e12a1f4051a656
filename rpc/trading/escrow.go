// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trading

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/digest"
	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/record"
	"github.com/bitmark-inc/carmarkd/rpc/ratelimit"
)

const (
	rateLimitEscrow = 200
	rateBurstEscrow = 100
)

// DealReader - read access to the escrow engine
type DealReader interface {
	Get(uint64) (*record.Deal, error)
	OpenDeal(digest.Digest) (uint64, bool)
}

// Escrow - type for the RPC
type Escrow struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Engine  DealReader
}

// NewEscrow - create the escrow RPC service
func NewEscrow(log *logger.L, engine DealReader) *Escrow {
	return &Escrow{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitEscrow, rateBurstEscrow),
		Engine:  engine,
	}
}

// EscrowGetArguments - a deal id, or an asset to find its open deal
type EscrowGetArguments struct {
	Id      uint64        `json:"id,string"`
	AssetId digest.Digest `json:"assetId"`
}

// EscrowGetReply - the deal
type EscrowGetReply struct {
	Deal *record.Deal `json:"deal"`
}

// Get - fetch one deal
func (e *Escrow) Get(arguments *EscrowGetArguments, reply *EscrowGetReply) error {

	if err := ratelimit.Limit(e.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.MissingParameters
	}

	id := arguments.Id
	if 0 == id {
		if arguments.AssetId.IsZero() {
			return fault.MissingParameters
		}
		open, ok := e.Engine.OpenDeal(arguments.AssetId)
		if !ok {
			return fault.DealNotFound
		}
		id = open
	}

	e.Log.Debugf("Escrow.Get: %d", id)

	deal, err := e.Engine.Get(id)
	if nil != err {
		return err
	}
	reply.Deal = deal
	return nil
}
