// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/digest"
	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/util"
)

// Operation - an action that a relay can forward on behalf of a signer
type Operation interface {
	Tag() TagType
	Pack() Packed
}

// Mint - create an asset owned by the signer
type Mint struct {
	ExternalId  string `json:"externalId"`
	MetadataRef string `json:"metadataRef"`
}

// SetVerified - record the verification outcome
type SetVerified struct {
	AssetId  digest.Digest `json:"assetId"`
	Verified bool          `json:"verified"`
}

// GrantRole - give a capability to a principal
type GrantRole struct {
	Principal *account.Account `json:"principal"`
	Role      Role             `json:"role"`
}

// RevokeRole - remove a capability from a principal
type RevokeRole struct {
	Principal *account.Account `json:"principal"`
	Role      Role             `json:"role"`
}

// CreateListing - offer an asset for sale, zero fee rate selects the default
type CreateListing struct {
	AssetId    digest.Digest `json:"assetId"`
	Price      uint64        `json:"price"`
	FeeRateBps uint64        `json:"feeRateBps"`
}

// UpdateListing - change the price of an active listing
type UpdateListing struct {
	ListingId uint64 `json:"listingId"`
	Price     uint64 `json:"price"`
}

// CancelListing - withdraw an active listing
type CancelListing struct {
	ListingId uint64 `json:"listingId"`
}

// PurchaseListing - buy directly with immediate settlement
type PurchaseListing struct {
	ListingId uint64 `json:"listingId"`
	Payment   uint64 `json:"payment"`
}

// PurchaseWithEscrow - buy with settlement held in escrow
type PurchaseWithEscrow struct {
	ListingId uint64 `json:"listingId"`
	Payment   uint64 `json:"payment"`
}

// CreateEscrow - seller opens a direct deal with a buyer
type CreateEscrow struct {
	AssetId digest.Digest    `json:"assetId"`
	Buyer   *account.Account `json:"buyer"`
	Amount  uint64           `json:"amount"`
}

// FundEscrow - buyer pays into a created deal
type FundEscrow struct {
	DealId  uint64 `json:"dealId"`
	Payment uint64 `json:"payment"`
}

// ReleaseEscrow - complete a funded deal
type ReleaseEscrow struct {
	DealId uint64 `json:"dealId"`
}

// CancelEscrow - refund a deal
type CancelEscrow struct {
	DealId uint64 `json:"dealId"`
}

// DisputeEscrow - a party contests a funded deal
type DisputeEscrow struct {
	DealId uint64 `json:"dealId"`
	Notes  string `json:"notes"`
}

// ResolveDispute - admin decision on a disputed deal
type ResolveDispute struct {
	DealId      uint64 `json:"dealId"`
	FavorSeller bool   `json:"favorSeller"`
}

// Tag - type code of each operation
func (op *Mint) Tag() TagType               { return MintTag }
func (op *SetVerified) Tag() TagType        { return SetVerifiedTag }
func (op *GrantRole) Tag() TagType          { return GrantRoleTag }
func (op *RevokeRole) Tag() TagType         { return RevokeRoleTag }
func (op *CreateListing) Tag() TagType      { return CreateListingTag }
func (op *UpdateListing) Tag() TagType      { return UpdateListingTag }
func (op *CancelListing) Tag() TagType      { return CancelListingTag }
func (op *PurchaseListing) Tag() TagType    { return PurchaseListingTag }
func (op *PurchaseWithEscrow) Tag() TagType { return PurchaseWithEscrowTag }
func (op *CreateEscrow) Tag() TagType       { return CreateEscrowTag }
func (op *FundEscrow) Tag() TagType         { return FundEscrowTag }
func (op *ReleaseEscrow) Tag() TagType      { return ReleaseEscrowTag }
func (op *CancelEscrow) Tag() TagType       { return CancelEscrowTag }
func (op *DisputeEscrow) Tag() TagType      { return DisputeEscrowTag }
func (op *ResolveDispute) Tag() TagType     { return ResolveDisputeTag }

var operationNames = map[TagType]string{
	MintTag:               "mint",
	SetVerifiedTag:        "setVerified",
	GrantRoleTag:          "grantRole",
	RevokeRoleTag:         "revokeRole",
	CreateListingTag:      "createListing",
	UpdateListingTag:      "updateListing",
	CancelListingTag:      "cancelListing",
	PurchaseListingTag:    "purchaseListing",
	PurchaseWithEscrowTag: "purchaseWithEscrow",
	CreateEscrowTag:       "createEscrow",
	FundEscrowTag:         "fundEscrow",
	ReleaseEscrowTag:      "releaseEscrow",
	CancelEscrowTag:       "cancelEscrow",
	DisputeEscrowTag:      "disputeEscrow",
	ResolveDisputeTag:     "resolveDispute",
}

// OperationName - the name used in logs and events
func OperationName(tag TagType) string {
	if name, ok := operationNames[tag]; ok {
		return name
	}
	return "unknown"
}

// NewOperation - empty operation for a name, ready for JSON decoding
func NewOperation(name string) (Operation, error) {
	for tag, n := range operationNames {
		if n == name {
			return emptyOperation(tag)
		}
	}
	return nil, fault.InvalidOperation
}

func emptyOperation(tag TagType) (Operation, error) {
	switch tag {
	case MintTag:
		return &Mint{}, nil
	case SetVerifiedTag:
		return &SetVerified{}, nil
	case GrantRoleTag:
		return &GrantRole{}, nil
	case RevokeRoleTag:
		return &RevokeRole{}, nil
	case CreateListingTag:
		return &CreateListing{}, nil
	case UpdateListingTag:
		return &UpdateListing{}, nil
	case CancelListingTag:
		return &CancelListing{}, nil
	case PurchaseListingTag:
		return &PurchaseListing{}, nil
	case PurchaseWithEscrowTag:
		return &PurchaseWithEscrow{}, nil
	case CreateEscrowTag:
		return &CreateEscrow{}, nil
	case FundEscrowTag:
		return &FundEscrow{}, nil
	case ReleaseEscrowTag:
		return &ReleaseEscrow{}, nil
	case CancelEscrowTag:
		return &CancelEscrow{}, nil
	case DisputeEscrowTag:
		return &DisputeEscrow{}, nil
	case ResolveDisputeTag:
		return &ResolveDispute{}, nil
	default:
		return nil, fault.InvalidOperation
	}
}

// Pack - Varint64(tag) followed by fields in declaration order
func (op *Mint) Pack() Packed {
	message := util.ToVarint64(uint64(MintTag))
	message = appendString(message, op.ExternalId)
	return appendString(message, op.MetadataRef)
}

// Pack - Varint64(tag) followed by fields in declaration order
func (op *SetVerified) Pack() Packed {
	message := util.ToVarint64(uint64(SetVerifiedTag))
	message = appendDigest(message, op.AssetId)
	return appendBool(message, op.Verified)
}

// Pack - Varint64(tag) followed by fields in declaration order
func (op *GrantRole) Pack() Packed {
	message := util.ToVarint64(uint64(GrantRoleTag))
	message = appendAccount(message, op.Principal)
	return appendUint64(message, uint64(op.Role))
}

// Pack - Varint64(tag) followed by fields in declaration order
func (op *RevokeRole) Pack() Packed {
	message := util.ToVarint64(uint64(RevokeRoleTag))
	message = appendAccount(message, op.Principal)
	return appendUint64(message, uint64(op.Role))
}

// Pack - Varint64(tag) followed by fields in declaration order
func (op *CreateListing) Pack() Packed {
	message := util.ToVarint64(uint64(CreateListingTag))
	message = appendDigest(message, op.AssetId)
	message = appendUint64(message, op.Price)
	return appendUint64(message, op.FeeRateBps)
}

// Pack - Varint64(tag) followed by fields in declaration order
func (op *UpdateListing) Pack() Packed {
	message := util.ToVarint64(uint64(UpdateListingTag))
	message = appendUint64(message, op.ListingId)
	return appendUint64(message, op.Price)
}

// Pack - Varint64(tag) followed by fields in declaration order
func (op *CancelListing) Pack() Packed {
	message := util.ToVarint64(uint64(CancelListingTag))
	return appendUint64(message, op.ListingId)
}

// Pack - Varint64(tag) followed by fields in declaration order
func (op *PurchaseListing) Pack() Packed {
	message := util.ToVarint64(uint64(PurchaseListingTag))
	message = appendUint64(message, op.ListingId)
	return appendUint64(message, op.Payment)
}

// Pack - Varint64(tag) followed by fields in declaration order
func (op *PurchaseWithEscrow) Pack() Packed {
	message := util.ToVarint64(uint64(PurchaseWithEscrowTag))
	message = appendUint64(message, op.ListingId)
	return appendUint64(message, op.Payment)
}

// Pack - Varint64(tag) followed by fields in declaration order
func (op *CreateEscrow) Pack() Packed {
	message := util.ToVarint64(uint64(CreateEscrowTag))
	message = appendDigest(message, op.AssetId)
	message = appendAccount(message, op.Buyer)
	return appendUint64(message, op.Amount)
}

// Pack - Varint64(tag) followed by fields in declaration order
func (op *FundEscrow) Pack() Packed {
	message := util.ToVarint64(uint64(FundEscrowTag))
	message = appendUint64(message, op.DealId)
	return appendUint64(message, op.Payment)
}

// Pack - Varint64(tag) followed by fields in declaration order
func (op *ReleaseEscrow) Pack() Packed {
	message := util.ToVarint64(uint64(ReleaseEscrowTag))
	return appendUint64(message, op.DealId)
}

// Pack - Varint64(tag) followed by fields in declaration order
func (op *CancelEscrow) Pack() Packed {
	message := util.ToVarint64(uint64(CancelEscrowTag))
	return appendUint64(message, op.DealId)
}

// Pack - Varint64(tag) followed by fields in declaration order
func (op *DisputeEscrow) Pack() Packed {
	message := util.ToVarint64(uint64(DisputeEscrowTag))
	message = appendUint64(message, op.DealId)
	return appendString(message, op.Notes)
}

// Pack - Varint64(tag) followed by fields in declaration order
func (op *ResolveDispute) Pack() Packed {
	message := util.ToVarint64(uint64(ResolveDisputeTag))
	message = appendUint64(message, op.DealId)
	return appendBool(message, op.FavorSeller)
}

// UnpackOperation - restore a packed operation
func (record Packed) UnpackOperation() (Operation, error) {
	tag, n := util.ClippedVarint64(record, 1, int(InvalidTag)-1)
	if 0 == n {
		return nil, fault.NotRecordPack
	}

	op, err := emptyOperation(TagType(tag))
	if nil != err {
		return nil, err
	}

	r := &reader{buffer: record, n: n}

	switch o := op.(type) {
	case *Mint:
		o.ExternalId = r.string()
		o.MetadataRef = r.string()
	case *SetVerified:
		o.AssetId = r.digest()
		o.Verified = r.bool()
	case *GrantRole:
		o.Principal = r.account()
		o.Role = Role(r.uint64())
	case *RevokeRole:
		o.Principal = r.account()
		o.Role = Role(r.uint64())
	case *CreateListing:
		o.AssetId = r.digest()
		o.Price = r.uint64()
		o.FeeRateBps = r.uint64()
	case *UpdateListing:
		o.ListingId = r.uint64()
		o.Price = r.uint64()
	case *CancelListing:
		o.ListingId = r.uint64()
	case *PurchaseListing:
		o.ListingId = r.uint64()
		o.Payment = r.uint64()
	case *PurchaseWithEscrow:
		o.ListingId = r.uint64()
		o.Payment = r.uint64()
	case *CreateEscrow:
		o.AssetId = r.digest()
		o.Buyer = r.account()
		o.Amount = r.uint64()
	case *FundEscrow:
		o.DealId = r.uint64()
		o.Payment = r.uint64()
	case *ReleaseEscrow:
		o.DealId = r.uint64()
	case *CancelEscrow:
		o.DealId = r.uint64()
	case *DisputeEscrow:
		o.DealId = r.uint64()
		o.Notes = r.string()
	case *ResolveDispute:
		o.DealId = r.uint64()
		o.FavorSeller = r.bool()
	}

	if err := r.done(); nil != err {
		return nil, err
	}
	return op, nil
}
