// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"time"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/digest"
	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/util"
)

// sequential field reader, the first failure sticks
type reader struct {
	buffer Packed
	n      int
	err    error
}

func (r *reader) fail() {
	if nil == r.err {
		r.err = fault.NotRecordPack
	}
}

func (r *reader) uint64() uint64 {
	if nil != r.err {
		return 0
	}
	value, count := util.FromVarint64(r.buffer[r.n:])
	if 0 == count {
		r.fail()
		return 0
	}
	r.n += count
	return value
}

func (r *reader) bytes() []byte {
	length := r.uint64()
	if nil != r.err {
		return nil
	}
	if length > uint64(len(r.buffer)-r.n) {
		r.fail()
		return nil
	}
	start := r.n
	r.n += int(length)
	b := make([]byte, length)
	copy(b, r.buffer[start:r.n])
	return b
}

func (r *reader) string() string {
	return string(r.bytes())
}

func (r *reader) bool() bool {
	switch r.uint64() {
	case 0:
		return false
	case 1:
		return true
	default:
		r.fail()
		return false
	}
}

func (r *reader) digest() digest.Digest {
	var d digest.Digest
	b := r.bytes()
	if nil != r.err {
		return d
	}
	if err := digest.FromBytes(&d, b); nil != err {
		r.fail()
	}
	return d
}

func (r *reader) account() *account.Account {
	b := r.bytes()
	if nil != r.err {
		return nil
	}
	a, err := account.AccountFromBytes(b)
	if nil != err {
		r.err = err
		return nil
	}
	return a
}

func (r *reader) time() time.Time {
	seconds := r.uint64()
	if 0 == seconds {
		return time.Time{}
	}
	return time.Unix(int64(seconds), 0).UTC()
}

func (r *reader) tag(expected TagType) {
	recordType, n := util.ClippedVarint64(r.buffer, 1, int(InvalidTag)-1)
	if 0 == n || expected != TagType(recordType) {
		r.fail()
		return
	}
	r.n = n
}

// all of the buffer must have been consumed
func (r *reader) done() error {
	if nil == r.err && r.n != len(r.buffer) {
		r.fail()
	}
	return r.err
}

// UnpackAsset - restore an asset record
func (record Packed) UnpackAsset() (*Asset, error) {
	r := &reader{buffer: record}
	r.tag(AssetTag)
	asset := &Asset{
		Id:          r.digest(),
		ExternalId:  r.string(),
		Owner:       r.account(),
		Verified:    r.bool(),
		MetadataRef: r.string(),
	}
	if err := r.done(); nil != err {
		return nil, err
	}
	return asset, nil
}

// UnpackListing - restore a listing record
func (record Packed) UnpackListing() (*Listing, error) {
	r := &reader{buffer: record}
	r.tag(ListingTag)
	listing := &Listing{
		Id:         r.uint64(),
		AssetId:    r.digest(),
		Seller:     r.account(),
		Price:      r.uint64(),
		FeeRateBps: r.uint64(),
		Status:     ListingStatus(r.uint64()),
		CreatedAt:  r.time(),
		ExpiresAt:  r.time(),
	}
	if err := r.done(); nil != err {
		return nil, err
	}
	return listing, nil
}

// UnpackDeal - restore an escrow deal record
func (record Packed) UnpackDeal() (*Deal, error) {
	r := &reader{buffer: record}
	r.tag(DealTag)
	deal := &Deal{
		Id:         r.uint64(),
		ListingId:  r.uint64(),
		AssetId:    r.digest(),
		Seller:     r.account(),
		Buyer:      r.account(),
		Amount:     r.uint64(),
		Funded:     r.uint64(),
		State:      DealState(r.uint64()),
		CreatedAt:  r.time(),
		ReleasedAt: r.time(),
		Timeout:    time.Duration(r.uint64()) * time.Second,
		Notes:      r.string(),
	}
	if err := r.done(); nil != err {
		return nil, err
	}
	return deal, nil
}
