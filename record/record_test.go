// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/record"
)

func makeAccount(t *testing.T) *account.Account {
	key, err := account.NewPrivateKey(true)
	if nil != err {
		t.Fatalf("generate key error: %s", err)
	}
	return key.Account()
}

func TestAssetPack(t *testing.T) {
	asset := &record.Asset{
		Id:          record.AssetId("1HGCM82633A004352"),
		ExternalId:  "1HGCM82633A004352",
		Owner:       makeAccount(t),
		Verified:    true,
		MetadataRef: "ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
	}

	packed := asset.Pack()
	unpacked, err := packed.UnpackAsset()
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, asset.Id, unpacked.Id)
	assert.Equal(t, asset.ExternalId, unpacked.ExternalId)
	assert.True(t, asset.Owner.Equal(unpacked.Owner))
	assert.True(t, unpacked.Verified)
	assert.Equal(t, asset.MetadataRef, unpacked.MetadataRef)

	_, err = packed[:len(packed)-1].UnpackAsset()
	assert.Equal(t, fault.NotRecordPack, err, "truncated record accepted")

	_, err = append(packed, 0x00).UnpackAsset()
	assert.Equal(t, fault.NotRecordPack, err, "trailing data accepted")

	_, err = packed.UnpackListing()
	assert.Equal(t, fault.NotRecordPack, err, "asset unpacked as listing")
}

func TestListingPack(t *testing.T) {
	created := time.Date(2020, 3, 1, 12, 0, 0, 0, time.UTC)
	listing := &record.Listing{
		Id:         7,
		AssetId:    record.AssetId("JH4KA7561PC008269"),
		Seller:     account.NewSystem(account.MarketplaceCode, true),
		Price:      1000,
		FeeRateBps: 200,
		Status:     record.ListingActive,
		CreatedAt:  created,
	}

	unpacked, err := listing.Pack().UnpackListing()
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, uint64(7), unpacked.Id)
	assert.Equal(t, listing.AssetId, unpacked.AssetId)
	assert.True(t, listing.Seller.Equal(unpacked.Seller))
	assert.Equal(t, uint64(1000), unpacked.Price)
	assert.Equal(t, uint64(200), unpacked.FeeRateBps)
	assert.Equal(t, record.ListingActive, unpacked.Status)
	assert.True(t, created.Equal(unpacked.CreatedAt))
	assert.True(t, unpacked.ExpiresAt.IsZero(), "zero expiry not preserved")
}

func TestDealPack(t *testing.T) {
	deal := &record.Deal{
		Id:         3,
		ListingId:  0,
		AssetId:    record.AssetId("WDBRF61J21F123456"),
		Seller:     makeAccount(t),
		Buyer:      makeAccount(t),
		Amount:     500,
		Funded:     500,
		State:      record.DealDisputed,
		CreatedAt:  time.Unix(1580000000, 0),
		ReleasedAt: time.Time{},
		Timeout:    7 * 24 * time.Hour,
		Notes:      "odometer reading does not match",
	}

	unpacked, err := deal.Pack().UnpackDeal()
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, deal.Id, unpacked.Id)
	assert.Equal(t, deal.Amount, unpacked.Amount)
	assert.Equal(t, deal.Funded, unpacked.Funded)
	assert.Equal(t, record.DealDisputed, unpacked.State)
	assert.Equal(t, deal.Timeout, unpacked.Timeout)
	assert.Equal(t, deal.Notes, unpacked.Notes)
	assert.True(t, unpacked.IsParty(deal.Buyer))
	assert.True(t, unpacked.IsParty(deal.Seller))
	assert.False(t, unpacked.IsParty(makeAccount(t)))
	assert.True(t, unpacked.ReleasedAt.IsZero())
}

func TestStates(t *testing.T) {
	assert.False(t, record.ListingActive.IsTerminal())
	for _, s := range []record.ListingStatus{record.ListingSold, record.ListingCancelled, record.ListingExpired} {
		assert.True(t, s.IsTerminal(), s.String())
	}

	for _, s := range []record.DealState{record.DealCreated, record.DealFunded, record.DealDisputed} {
		assert.False(t, s.IsTerminal(), s.String())
	}
	assert.True(t, record.DealReleased.IsTerminal())
	assert.True(t, record.DealCancelled.IsTerminal())

	var state record.DealState
	assert.Nil(t, state.UnmarshalText([]byte("Funded")))
	assert.Equal(t, record.DealFunded, state)
	assert.Equal(t, fault.InvalidItem, state.UnmarshalText([]byte("Paid")))
}

func TestRoles(t *testing.T) {
	for _, name := range []string{"admin", "verifier", "relayer"} {
		r, err := record.RoleFromString(name)
		assert.Nil(t, err, name)
		assert.True(t, r.Valid(), name)
		assert.Equal(t, name, r.String())
	}
	_, err := record.RoleFromString("owner")
	assert.Equal(t, fault.InvalidRole, err)
	assert.False(t, record.Role(0).Valid())
	assert.False(t, record.Role(9).Valid())
}
