// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - JSON RPC over TLS for relayers and clients
//
// services:
//
//	Relay.Submit   forward a signed meta request
//	Relay.Nonce    last accepted nonce of a signer
//	Asset.Get      one asset
//	Asset.Owned    assets held by an account
//	Listing.Get    one listing
//	Escrow.Get     one escrow deal
//	Role.Has       role membership of a principal
//	Balance.Get    ledger balance of an account
//	Node.Info      daemon state
package rpc
