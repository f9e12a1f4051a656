// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - LevelDB backed key/value pools
//
// A single database is split into pools, each identified by a one
// byte key prefix declared as a struct tag on Pools:
//
//	A  asset id                        → packed asset
//	O  owner ++ asset id               → marker byte
//	L  listing id                      → packed listing
//	M  asset id                        → active listing id
//	E  deal id                         → packed deal
//	F  asset id                        → open deal id
//	R  principal ++ role               → marker byte
//	C  counter name                    → uint64
//	N  signer                          → last accepted nonce
//	B  account                         → balance
//
// All writes go through a Transaction.  Only one transaction can be
// active at a time; Begin blocks until the previous one commits or
// aborts.  Reads through a PoolHandle see committed data only, reads
// through a Transaction also see its own uncommitted writes.
package storage
