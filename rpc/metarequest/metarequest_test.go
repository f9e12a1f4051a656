// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metarequest_test

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/record"
	"github.com/bitmark-inc/carmarkd/rpc/fixtures"
	"github.com/bitmark-inc/carmarkd/rpc/metarequest"
	"github.com/bitmark-inc/carmarkd/rpc/mocks"
)

func keys(t *testing.T) (*account.PrivateKey, *account.PrivateKey) {
	signer, err := account.NewPrivateKey(true)
	if nil != err {
		t.Fatalf("signer key error: %s", err)
	}
	relayer, err := account.NewPrivateKey(true)
	if nil != err {
		t.Fatalf("relayer key error: %s", err)
	}
	return signer, relayer
}

func signed(t *testing.T, signer *account.PrivateKey, relayer *account.PrivateKey, nonce uint64) *metarequest.SubmitArguments {
	request := &record.MetaRequest{
		Operation: &record.Mint{
			ExternalId:  "VIN-1HGCM82633A004352",
			MetadataRef: "ipfs://vehicle",
		},
		Nonce:  nonce,
		Expiry: time.Now().Add(10 * time.Minute).UTC(),
	}
	if err := request.Sign(signer); nil != err {
		t.Fatalf("sign error: %s", err)
	}
	message, err := request.Message()
	if nil != err {
		t.Fatalf("message error: %s", err)
	}
	return &metarequest.SubmitArguments{
		Relayer:          relayer.Account(),
		RelayerSignature: relayer.Sign(message),
		Request:          request,
	}
}

func TestSubmit(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := mocks.NewMockSubmitter(ctl)
	r := metarequest.New(logger.New(fixtures.LogCategory), s)

	signer, relayer := keys(t)
	args := signed(t, signer, relayer, 7)

	s.EXPECT().Submit(args.Relayer, args.Request).Return(true, nil).Times(1)

	var reply metarequest.SubmitReply
	err := r.Submit(args, &reply)
	assert.Nil(t, err, "wrong Submit")
	assert.True(t, reply.Forwarded, "not forwarded")
	assert.Equal(t, "", reply.Outcome, "wrong outcome")
	assert.Equal(t, uint64(7), reply.Nonce, "wrong nonce")
}

func TestSubmitOperationFailed(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := mocks.NewMockSubmitter(ctl)
	r := metarequest.New(logger.New(fixtures.LogCategory), s)

	signer, relayer := keys(t)
	args := signed(t, signer, relayer, 3)

	s.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(true, fault.DuplicateExternalId).Times(1)

	var reply metarequest.SubmitReply
	err := r.Submit(args, &reply)
	assert.Nil(t, err, "consumed nonce reported as rpc error")
	assert.True(t, reply.Forwarded, "not forwarded")
	assert.Equal(t, fault.DuplicateExternalId.Error(), reply.Outcome, "wrong outcome")
}

func TestSubmitRejected(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := mocks.NewMockSubmitter(ctl)
	r := metarequest.New(logger.New(fixtures.LogCategory), s)

	signer, relayer := keys(t)
	args := signed(t, signer, relayer, 1)

	s.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(false, fault.ReplayRejected).Times(1)

	var reply metarequest.SubmitReply
	err := r.Submit(args, &reply)
	assert.Equal(t, fault.ReplayRejected, err, "wrong error")
	assert.False(t, reply.Forwarded, "forwarded")
}

func TestSubmitBadRelayerSignature(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := mocks.NewMockSubmitter(ctl)
	r := metarequest.New(logger.New(fixtures.LogCategory), s)

	signer, relayer := keys(t)
	args := signed(t, signer, relayer, 1)

	// relayer claims to be the signer
	args.Relayer = signer.Account()

	s.EXPECT().Submit(gomock.Any(), gomock.Any()).Times(0)

	var reply metarequest.SubmitReply
	err := r.Submit(args, &reply)
	assert.Equal(t, fault.InvalidSignature, err, "wrong error")
}

func TestSubmitMissing(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := mocks.NewMockSubmitter(ctl)
	r := metarequest.New(logger.New(fixtures.LogCategory), s)

	_, relayer := keys(t)

	var reply metarequest.SubmitReply
	err := r.Submit(&metarequest.SubmitArguments{Relayer: relayer.Account()}, &reply)
	assert.Equal(t, fault.MissingParameters, err, "wrong error")
}

func TestNonce(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := mocks.NewMockSubmitter(ctl)
	r := metarequest.New(logger.New(fixtures.LogCategory), s)

	signer, _ := keys(t)

	s.EXPECT().Nonce(signer.Account()).Return(uint64(42)).Times(1)

	var reply metarequest.NonceReply
	err := r.Nonce(&metarequest.NonceArguments{Signer: signer.Account()}, &reply)
	assert.Nil(t, err, "wrong Nonce")
	assert.Equal(t, uint64(42), reply.Nonce, "wrong nonce")

	err = r.Nonce(&metarequest.NonceArguments{}, &reply)
	assert.Equal(t, fault.MissingParameters, err, "wrong error")
}
