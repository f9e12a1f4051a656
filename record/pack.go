// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"time"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/digest"
	"github.com/bitmark-inc/carmarkd/util"
)

// Pack - Varint64(tag) followed by fields in order as struct above
func (asset *Asset) Pack() Packed {
	message := util.ToVarint64(uint64(AssetTag))
	message = appendBytes(message, asset.Id[:])
	message = appendString(message, asset.ExternalId)
	message = appendAccount(message, asset.Owner)
	message = appendBool(message, asset.Verified)
	return appendString(message, asset.MetadataRef)
}

// Pack - Varint64(tag) followed by fields in order as struct above
func (listing *Listing) Pack() Packed {
	message := util.ToVarint64(uint64(ListingTag))
	message = appendUint64(message, listing.Id)
	message = appendBytes(message, listing.AssetId[:])
	message = appendAccount(message, listing.Seller)
	message = appendUint64(message, listing.Price)
	message = appendUint64(message, listing.FeeRateBps)
	message = appendUint64(message, uint64(listing.Status))
	message = appendTime(message, listing.CreatedAt)
	return appendTime(message, listing.ExpiresAt)
}

// Pack - Varint64(tag) followed by fields in order as struct above
func (deal *Deal) Pack() Packed {
	message := util.ToVarint64(uint64(DealTag))
	message = appendUint64(message, deal.Id)
	message = appendUint64(message, deal.ListingId)
	message = appendBytes(message, deal.AssetId[:])
	message = appendAccount(message, deal.Seller)
	message = appendAccount(message, deal.Buyer)
	message = appendUint64(message, deal.Amount)
	message = appendUint64(message, deal.Funded)
	message = appendUint64(message, uint64(deal.State))
	message = appendTime(message, deal.CreatedAt)
	message = appendTime(message, deal.ReleasedAt)
	message = appendUint64(message, uint64(deal.Timeout/time.Second))
	return appendString(message, deal.Notes)
}

// append a single string to a buffer
//
// the field is prefixed by Varint64(length)
func appendString(buffer Packed, s string) Packed {
	buffer = append(buffer, util.ToVarint64(uint64(len(s)))...)
	return append(buffer, s...)
}

// append an account to a buffer
//
// the field is prefixed by Varint64(length), nil is zero length
func appendAccount(buffer Packed, a *account.Account) Packed {
	if nil == a || nil == a.AccountInterface {
		return appendBytes(buffer, nil)
	}
	return appendBytes(buffer, a.Bytes())
}

// append a bytes to a buffer
//
// the field is prefixed by Varint64(length)
func appendBytes(buffer Packed, data []byte) Packed {
	buffer = append(buffer, util.ToVarint64(uint64(len(data)))...)
	return append(buffer, data...)
}

func appendDigest(buffer Packed, d digest.Digest) Packed {
	return appendBytes(buffer, d[:])
}

// append a Varint64 to buffer
func appendUint64(buffer Packed, value uint64) Packed {
	return append(buffer, util.ToVarint64(value)...)
}

func appendBool(buffer Packed, b bool) Packed {
	if b {
		return appendUint64(buffer, 1)
	}
	return appendUint64(buffer, 0)
}

// unix seconds, the zero time is 0
func appendTime(buffer Packed, t time.Time) Packed {
	if t.IsZero() {
		return appendUint64(buffer, 0)
	}
	return appendUint64(buffer, uint64(t.Unix()))
}
