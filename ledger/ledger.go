// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - balance accounts in minor currency units
//
// Balances are opaque credits; withdrawal and external settlement are
// handled elsewhere.
package ledger

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/storage"
)

// Ledger - balances held in the store
type Ledger struct {
	log   *logger.L
	store *storage.Store
}

// New - create a ledger over a store
func New(store *storage.Store) *Ledger {
	return &Ledger{
		log:   logger.New("ledger"),
		store: store,
	}
}

// Balance - committed balance of an account
func (l *Ledger) Balance(a *account.Account) uint64 {
	n, _ := l.store.Pool.Balances.GetN(a.Bytes())
	return n
}

// BalanceTx - balance including the transaction's writes
func (l *Ledger) BalanceTx(trx storage.Transaction, a *account.Account) uint64 {
	n, _ := trx.GetN(l.store.Pool.Balances, a.Bytes())
	return n
}

// Credit - add to an account
func (l *Ledger) Credit(trx storage.Transaction, a *account.Account, amount uint64) error {
	if 0 == amount {
		return nil
	}
	key := a.Bytes()
	balance, _ := trx.GetN(l.store.Pool.Balances, key)
	if balance+amount < balance {
		l.log.Criticalf("credit: %s  balance: %d  amount: %d overflows", a, balance, amount)
		return fault.BalanceOverflow
	}
	trx.PutN(l.store.Pool.Balances, key, balance+amount)
	l.log.Debugf("credit: %s  amount: %d  balance: %d", a, amount, balance+amount)
	return nil
}

// Transfer - move an amount between accounts
func (l *Ledger) Transfer(trx storage.Transaction, from *account.Account, to *account.Account, amount uint64) error {
	if 0 == amount {
		return nil
	}
	key := from.Bytes()
	balance, _ := trx.GetN(l.store.Pool.Balances, key)
	if balance < amount {
		l.log.Errorf("transfer from: %s  balance: %d  amount: %d", from, balance, amount)
		return fault.InsufficientBalance
	}
	trx.PutN(l.store.Pool.Balances, key, balance-amount)
	return l.Credit(trx, to, amount)
}
