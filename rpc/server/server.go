// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/counter"
	"github.com/bitmark-inc/carmarkd/rpc/accounts"
	"github.com/bitmark-inc/carmarkd/rpc/assets"
	"github.com/bitmark-inc/carmarkd/rpc/metarequest"
	"github.com/bitmark-inc/carmarkd/rpc/node"
	"github.com/bitmark-inc/carmarkd/rpc/trading"
)

// Services - engines behind the RPC services
type Services struct {
	Chain     string
	Relay     RelayService
	Assets    assets.AssetReader
	Market    trading.ListingReader
	Escrow    trading.DealReader
	Roles     accounts.RoleChecker
	Ledger    accounts.BalanceReader
	Events    node.BacklogReader
	Published func() uint64
}

// RelayService - submission plus its counters
type RelayService interface {
	metarequest.Submitter
	node.StatsReader
}

// Create - an RPC server with every service registered
func Create(log *logger.L, version string, rpcCount *counter.Counter, services *Services) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(metarequest.New(log, services.Relay))
	_ = server.Register(assets.New(log, services.Assets))
	_ = server.Register(trading.NewListing(log, services.Market))
	_ = server.Register(trading.NewEscrow(log, services.Escrow))
	_ = server.Register(accounts.NewRole(log, services.Roles))
	_ = server.Register(accounts.NewBalance(log, services.Ledger))
	_ = server.Register(node.New(log, services.Chain, start, version, rpcCount, services.Relay, services.Events, services.Published))

	return server
}
