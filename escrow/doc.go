// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package escrow - deals that hold an asset and its payment until
// a verifier releases them or they are cancelled
//
// state transitions:
//
//	Created  -> Funded     exact payment from the buyer
//	Funded   -> Released   verifier
//	Created  -> Cancelled  admin, or a party after the timeout
//	Funded   -> Cancelled  admin, or a party after the timeout
//	Funded   -> Disputed   buyer or seller
//	Disputed -> Released   admin in favour of the seller
//	Disputed -> Cancelled  admin in favour of the buyer
//
// while a deal is open the asset is owned by the escrow custody
// account and any payment is held in its balance
package escrow
