// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package relay - forward operations signed off-line by their principal
//
// a relayer submits a meta request carrying the signer, a packed
// operation, a nonce and an expiry; once checked the operation runs with
// the signer as the acting principal
//
// nonces are strictly increasing per signer; the nonce is consumed even
// if the forwarded operation fails so a signed request can never be
// replayed
package relay
