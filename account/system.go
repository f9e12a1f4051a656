// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

// codes of the built-in custody accounts
const (
	MarketplaceCode = 0x0001
	EscrowCode      = 0x0002
	TreasuryCode    = 0x0003
)

// Custody - the system accounts for one network
type Custody struct {
	Marketplace *Account
	Escrow      *Account
	Treasury    *Account
}

// NewCustody - build the custody set, a nil treasury selects the default
func NewCustody(test bool, treasury *Account) Custody {
	if nil == treasury {
		treasury = NewSystem(TreasuryCode, test)
	}
	return Custody{
		Marketplace: NewSystem(MarketplaceCode, test),
		Escrow:      NewSystem(EscrowCode, test),
		Treasury:    treasury,
	}
}
