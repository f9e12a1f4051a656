// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/carmarkd/fault"
)

// common errors - keep in alphabetic order
const (
	ErrConnectRequired  = fault.InvalidError("connect is required")
	ErrExpiryNotFuture  = fault.InvalidError("expiry must be in the future")
	ErrIdOrAsset        = fault.InvalidError("one of id or asset is required")
	ErrIdOrExternalId   = fault.InvalidError("one of id or external id is required")
	ErrInvalidCount     = fault.InvalidError("count must be positive")
	ErrInvalidNetwork   = fault.InvalidError("invalid network")
	ErrKeyRequired      = fault.InvalidError("key is required")
	ErrNetworkMismatch  = fault.InvalidError("key does not match network")
	ErrOperationMissing = fault.InvalidError("operation is required")
	ErrRelayerRequired  = fault.InvalidError("relayer key is required")
	ErrUnknownKeyFormat = fault.InvalidError("key is neither a seed nor a private key")
)
