// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/hex"
	"time"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/digest"
)

// TagType - type code for records and operations
type TagType uint64

// enumerate the possible record types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// stored records
	AssetTag   = TagType(iota)
	ListingTag = TagType(iota)
	DealTag    = TagType(iota)

	// relayable operations
	MintTag               = TagType(iota)
	SetVerifiedTag        = TagType(iota)
	GrantRoleTag          = TagType(iota)
	RevokeRoleTag         = TagType(iota)
	CreateListingTag      = TagType(iota)
	UpdateListingTag      = TagType(iota)
	CancelListingTag      = TagType(iota)
	PurchaseListingTag    = TagType(iota)
	PurchaseWithEscrowTag = TagType(iota)
	CreateEscrowTag       = TagType(iota)
	FundEscrowTag         = TagType(iota)
	ReleaseEscrowTag      = TagType(iota)
	CancelEscrowTag       = TagType(iota)
	DisputeEscrowTag      = TagType(iota)
	ResolveDisputeTag     = TagType(iota)

	// signed envelope
	MetaRequestTag = TagType(iota)

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed records are just a byte slice
type Packed []byte

// MarshalText - packed data as hex
func (p Packed) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(len(p)))
	hex.Encode(buffer, p)
	return buffer, nil
}

// UnmarshalText - hex to packed data
func (p *Packed) UnmarshalText(s []byte) error {
	buffer := make([]byte, hex.DecodedLen(len(s)))
	n, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	*p = buffer[:n]
	return nil
}

// byte sizes for various fields
const (
	MaxExternalIdLength  = 64
	MaxMetadataRefLength = 2048
	MaxNotesLength       = 2048
	maxSignatureLength   = 1024
)

// MaxFeeRateBps - 100%
const MaxFeeRateBps = 10000

// Asset - the tokenised vehicle
type Asset struct {
	Id          digest.Digest    `json:"id"`
	ExternalId  string           `json:"externalId"`
	Owner       *account.Account `json:"owner"`
	Verified    bool             `json:"verified"`
	MetadataRef string           `json:"metadataRef"`
}

// AssetId - identifier of the asset for an external identifier
func AssetId(externalId string) digest.Digest {
	return digest.New([]byte(externalId))
}

// Listing - an open offer to sell an asset at a fixed price
type Listing struct {
	Id         uint64           `json:"id"`
	AssetId    digest.Digest    `json:"assetId"`
	Seller     *account.Account `json:"seller"`
	Price      uint64           `json:"price"`
	FeeRateBps uint64           `json:"feeRateBps"`
	Status     ListingStatus    `json:"status"`
	CreatedAt  time.Time        `json:"createdAt"`
	ExpiresAt  time.Time        `json:"expiresAt"`
}

// Deal - an escrow holding an asset and a payment
type Deal struct {
	Id         uint64           `json:"id"`
	ListingId  uint64           `json:"listingId"`
	AssetId    digest.Digest    `json:"assetId"`
	Seller     *account.Account `json:"seller"`
	Buyer      *account.Account `json:"buyer"`
	Amount     uint64           `json:"amount"`
	Funded     uint64           `json:"funded"`
	State      DealState        `json:"state"`
	CreatedAt  time.Time        `json:"createdAt"`
	ReleasedAt time.Time        `json:"releasedAt"`
	Timeout    time.Duration    `json:"timeout"`
	Notes      string           `json:"notes"`
}

// IsParty - buyer or seller of the deal
func (deal *Deal) IsParty(principal *account.Account) bool {
	return deal.Buyer.Equal(principal) || deal.Seller.Equal(principal)
}
