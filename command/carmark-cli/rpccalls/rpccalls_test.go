// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"bytes"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/record"
	"github.com/bitmark-inc/carmarkd/rpc/accounts"
	"github.com/bitmark-inc/carmarkd/rpc/metarequest"
	"github.com/bitmark-inc/carmarkd/rpc/node"
)

type fakeRelay struct {
	last uint64
}

func (r *fakeRelay) Submit(arguments *metarequest.SubmitArguments, reply *metarequest.SubmitReply) error {
	message, err := arguments.Request.Message()
	if nil != err {
		return err
	}
	if err := arguments.Relayer.CheckSignature(message, arguments.RelayerSignature); nil != err {
		return fault.InvalidSignature
	}
	if err := arguments.Request.Verify(); nil != err {
		return err
	}
	r.last = arguments.Request.Nonce
	reply.Forwarded = true
	reply.Nonce = arguments.Request.Nonce
	return nil
}

func (r *fakeRelay) Nonce(arguments *metarequest.NonceArguments, reply *metarequest.NonceReply) error {
	reply.Nonce = r.last
	return nil
}

type fakeNode struct{}

func (n *fakeNode) Info(arguments *node.InfoArguments, reply *node.InfoReply) error {
	reply.Chain = "local"
	reply.Version = "v1"
	return nil
}

type fakeBalance struct{}

func (b *fakeBalance) Get(arguments *accounts.GetArguments, reply *accounts.GetReply) error {
	if nil == arguments.Account {
		return fault.MissingParameters
	}
	reply.Balance = 250
	return nil
}

func setupClient(t *testing.T, verbose bool, handle *bytes.Buffer) *Client {
	server := rpc.NewServer()
	assert.Nil(t, server.RegisterName("Relay", &fakeRelay{}), "register relay")
	assert.Nil(t, server.RegisterName("Node", &fakeNode{}), "register node")
	assert.Nil(t, server.RegisterName("Balance", &fakeBalance{}), "register balance")

	serverConn, clientConn := net.Pipe()
	go server.ServeCodec(jsonrpc.NewServerCodec(serverConn))

	return newClient(clientConn, true, verbose, handle)
}

func TestSubmitAndNonce(t *testing.T) {
	var b bytes.Buffer
	client := setupClient(t, false, &b)
	defer client.Close()

	signer, _ := account.NewPrivateKey(true)
	relayer, _ := account.NewPrivateKey(true)

	request := &record.MetaRequest{
		Operation: &record.Mint{ExternalId: "VIN-1", MetadataRef: "ipfs://m"},
		Nonce:     7,
		Expiry:    time.Now().Add(10 * time.Minute),
	}
	assert.Nil(t, request.Sign(signer), "sign")

	reply, err := client.Submit(&SubmitData{
		Request: request,
		Relayer: relayer,
	})
	assert.Nil(t, err, "submit")
	assert.True(t, reply.Forwarded, "forwarded")
	assert.Equal(t, uint64(7), reply.Nonce, "nonce")

	nonce, err := client.GetNonce(signer.Account())
	assert.Nil(t, err, "nonce")
	assert.Equal(t, uint64(7), nonce, "last nonce")

	assert.Equal(t, 0, b.Len(), "quiet when not verbose")
}

func TestSubmitTamperedRequest(t *testing.T) {
	var b bytes.Buffer
	client := setupClient(t, false, &b)
	defer client.Close()

	signer, _ := account.NewPrivateKey(true)
	relayer, _ := account.NewPrivateKey(true)

	request := &record.MetaRequest{
		Operation: &record.Mint{ExternalId: "VIN-2"},
		Nonce:     1,
		Expiry:    time.Now().Add(time.Minute),
	}
	assert.Nil(t, request.Sign(signer), "sign")
	request.Nonce = 2

	_, err := client.Submit(&SubmitData{
		Request: request,
		Relayer: relayer,
	})
	assert.NotNil(t, err, "tampered nonce")
}

func TestVerboseBalanceAndInfo(t *testing.T) {
	var b bytes.Buffer
	client := setupClient(t, true, &b)
	defer client.Close()

	owner, _ := account.NewPrivateKey(true)

	balance, err := client.GetBalance(owner.Account())
	assert.Nil(t, err, "balance")
	assert.Equal(t, uint64(250), balance.Balance, "amount")
	assert.Contains(t, b.String(), "Balance Request:", "verbose request")
	assert.Contains(t, b.String(), "Balance Reply:", "verbose reply")

	info, err := client.GetNodeInfo()
	assert.Nil(t, err, "info")
	assert.Equal(t, "local", info.Chain, "chain")
	assert.True(t, client.IsTesting(), "testnet")
}
