// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package market - fixed price listings of verified assets
//
// a listed asset is held by the marketplace custody account until the
// listing is sold, cancelled or expires
//
// a direct purchase settles immediately, splitting the price between
// the treasury fee and the seller; an escrowed purchase moves the asset
// into an escrow deal funded by the payment
package market
