// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package assets_test

import (
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/record"
	"github.com/bitmark-inc/carmarkd/rpc/assets"
	"github.com/bitmark-inc/carmarkd/rpc/fixtures"
	"github.com/bitmark-inc/carmarkd/rpc/mocks"
)

func owner(t *testing.T) *account.Account {
	key, err := account.NewPrivateKey(true)
	if nil != err {
		t.Fatalf("key error: %s", err)
	}
	return key.Account()
}

func TestGetByExternalId(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	r := mocks.NewMockAssetReader(ctl)
	a := assets.New(logger.New(fixtures.LogCategory), r)

	externalId := "VIN-WVWZZZ1JZXW000001"
	expected := &record.Asset{
		Id:         record.AssetId(externalId),
		ExternalId: externalId,
		Owner:      owner(t),
	}

	r.EXPECT().Get(record.AssetId(externalId)).Return(expected, nil).Times(1)

	var reply assets.GetReply
	err := a.Get(&assets.GetArguments{ExternalId: externalId}, &reply)
	assert.Nil(t, err, "wrong Get")
	assert.Equal(t, expected, reply.Asset, "wrong asset")
}

func TestGetNotFound(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	r := mocks.NewMockAssetReader(ctl)
	a := assets.New(logger.New(fixtures.LogCategory), r)

	id := record.AssetId("missing")
	r.EXPECT().Get(id).Return(nil, fault.AssetNotFound).Times(1)

	var reply assets.GetReply
	err := a.Get(&assets.GetArguments{Id: id}, &reply)
	assert.Equal(t, fault.AssetNotFound, err, "wrong error")

	err = a.Get(&assets.GetArguments{}, &reply)
	assert.Equal(t, fault.MissingParameters, err, "wrong error for empty arguments")
}

func TestOwned(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	r := mocks.NewMockAssetReader(ctl)
	a := assets.New(logger.New(fixtures.LogCategory), r)

	o := owner(t)
	held := make([]*record.Asset, 5)
	for i := range held {
		externalId := fmt.Sprintf("VIN-%d", i)
		held[i] = &record.Asset{
			Id:         record.AssetId(externalId),
			ExternalId: externalId,
			Owner:      o,
		}
	}

	r.EXPECT().Owned(o).Return(held, nil).Times(3)

	var reply assets.OwnedReply
	err := a.Owned(&assets.OwnedArguments{Owner: o, Start: 0, Count: 2}, &reply)
	assert.Nil(t, err, "wrong first page")
	assert.Equal(t, held[0:2], reply.Assets, "wrong first page assets")
	assert.Equal(t, 2, reply.Next, "wrong first next")
	assert.Equal(t, 5, reply.Total, "wrong total")

	reply = assets.OwnedReply{}
	err = a.Owned(&assets.OwnedArguments{Owner: o, Start: 4, Count: 2}, &reply)
	assert.Nil(t, err, "wrong last page")
	assert.Equal(t, held[4:], reply.Assets, "wrong last page assets")
	assert.Equal(t, 0, reply.Next, "wrong last next")

	reply = assets.OwnedReply{}
	err = a.Owned(&assets.OwnedArguments{Owner: o, Start: 9, Count: 2}, &reply)
	assert.Nil(t, err, "wrong past end")
	assert.Equal(t, 0, len(reply.Assets), "assets past end")
}

func TestOwnedInvalidCount(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	r := mocks.NewMockAssetReader(ctl)
	a := assets.New(logger.New(fixtures.LogCategory), r)

	var reply assets.OwnedReply
	err := a.Owned(&assets.OwnedArguments{Owner: owner(t), Count: assets.MaximumOwnedCount + 1}, &reply)
	assert.Equal(t, fault.InvalidCount, err, "wrong error")

	err = a.Owned(&assets.OwnedArguments{Count: 1}, &reply)
	assert.Equal(t, fault.MissingParameters, err, "wrong error without owner")
}
