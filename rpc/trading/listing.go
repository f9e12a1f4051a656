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
	rateLimitListing = 200
	rateBurstListing = 100
)

// ListingReader - read access to the marketplace
type ListingReader interface {
	Get(uint64) (*record.Listing, error)
	ActiveListing(digest.Digest) (uint64, bool)
	FeeRateBps() uint64
}

// Listing - type for the RPC
type Listing struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Market  ListingReader
}

// NewListing - create the listing RPC service
func NewListing(log *logger.L, market ListingReader) *Listing {
	return &Listing{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitListing, rateBurstListing),
		Market:  market,
	}
}

// ListingGetArguments - a listing id, or an asset to find its active listing
type ListingGetArguments struct {
	Id      uint64        `json:"id,string"`
	AssetId digest.Digest `json:"assetId"`
}

// ListingGetReply - the listing and the current default fee
type ListingGetReply struct {
	Listing    *record.Listing `json:"listing"`
	FeeRateBps uint64          `json:"defaultFeeRateBps"`
}

// Get - fetch one listing
func (l *Listing) Get(arguments *ListingGetArguments, reply *ListingGetReply) error {

	if err := ratelimit.Limit(l.Limiter); nil != err {
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
		active, ok := l.Market.ActiveListing(arguments.AssetId)
		if !ok {
			return fault.ListingNotFound
		}
		id = active
	}

	l.Log.Debugf("Listing.Get: %d", id)

	listing, err := l.Market.Get(id)
	if nil != err {
		return err
	}
	reply.Listing = listing
	reply.FeeRateBps = l.Market.FeeRateBps()
	return nil
}
