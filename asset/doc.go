// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - registry of tokenised vehicles
//
// an asset is created once per external identifier (VIN) and is
// never deleted.  Its owner only changes through Transfer, which the
// marketplace and escrow engines call inside their own transactions.
// The verified flag is set by principals holding the Verifier role.
package asset
