// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package assets

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/digest"
	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/record"
	"github.com/bitmark-inc/carmarkd/rpc/ratelimit"
)

const (
	rateLimitAsset = 200
	rateBurstAsset = 100

	// MaximumOwnedCount - largest reply from Asset.Owned
	MaximumOwnedCount = 100
)

// AssetReader - read access to the asset registry
type AssetReader interface {
	Get(digest.Digest) (*record.Asset, error)
	Owned(*account.Account) ([]*record.Asset, error)
}

// Asset - type for the RPC
type Asset struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Registry AssetReader
}

// New - create the asset RPC service
func New(log *logger.L, registry AssetReader) *Asset {
	return &Asset{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitAsset, rateBurstAsset),
		Registry: registry,
	}
}

// Asset get
// ---------

// GetArguments - select by id or by the vehicle's external identifier
type GetArguments struct {
	Id         digest.Digest `json:"id"`
	ExternalId string        `json:"externalId"`
}

// GetReply - the asset record
type GetReply struct {
	Asset *record.Asset `json:"asset"`
}

// Get - fetch one asset
func (a *Asset) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.MissingParameters
	}

	id := arguments.Id
	if "" != arguments.ExternalId {
		id = record.AssetId(arguments.ExternalId)
	}
	if id.IsZero() {
		return fault.MissingParameters
	}

	a.Log.Debugf("Asset.Get: %s", id)

	asset, err := a.Registry.Get(id)
	if nil != err {
		return err
	}
	reply.Asset = asset
	return nil
}

// Asset owned
// -----------

// OwnedArguments - owner to list plus paging
type OwnedArguments struct {
	Owner *account.Account `json:"owner"`
	Start int              `json:"start"`
	Count int              `json:"count"`
}

// OwnedReply - a page of assets, Next is zero when no more remain
type OwnedReply struct {
	Assets []*record.Asset `json:"assets"`
	Next   int             `json:"next"`
	Total  int             `json:"total"`
}

// Owned - assets currently held by an account
func (a *Asset) Owned(arguments *OwnedArguments, reply *OwnedReply) error {

	if nil == arguments {
		return fault.MissingParameters
	}

	if err := ratelimit.LimitN(a.Limiter, arguments.Count, MaximumOwnedCount); nil != err {
		return err
	}

	if nil == arguments.Owner || nil == arguments.Owner.AccountInterface || arguments.Start < 0 {
		return fault.MissingParameters
	}

	a.Log.Debugf("Asset.Owned: %s  start: %d  count: %d", arguments.Owner, arguments.Start, arguments.Count)

	owned, err := a.Registry.Owned(arguments.Owner)
	if nil != err {
		return err
	}

	reply.Total = len(owned)
	reply.Assets = []*record.Asset{}
	if arguments.Start >= len(owned) {
		return nil
	}

	// Next stays zero on the final page
	end := arguments.Start + arguments.Count
	if end < len(owned) {
		reply.Next = end
	} else {
		end = len(owned)
	}
	reply.Assets = owned[arguments.Start:end]
	return nil
}
