// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package accounts

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/rpc/ratelimit"
)

const (
	rateLimitBalance = 200
	rateBurstBalance = 100
)

// BalanceReader - read access to the settlement ledger
type BalanceReader interface {
	Balance(*account.Account) uint64
}

// Balance - type for the RPC
type Balance struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Ledger  BalanceReader
}

// NewBalance - create the balance RPC service
func NewBalance(log *logger.L, ledger BalanceReader) *Balance {
	return &Balance{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitBalance, rateBurstBalance),
		Ledger:  ledger,
	}
}

// GetArguments - account to query
type GetArguments struct {
	Account *account.Account `json:"account"`
}

// GetReply - settled funds credited to the account
type GetReply struct {
	Balance uint64 `json:"balance,string"`
}

// Get - current balance
func (b *Balance) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(b.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Account || nil == arguments.Account.AccountInterface {
		return fault.MissingParameters
	}

	reply.Balance = b.Ledger.Balance(arguments.Account)
	return nil
}
