// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"fmt"
	"math/rand"
	"net/rpc"
	"net/rpc/jsonrpc"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/counter"
	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/rpc/certificate"
	"github.com/bitmark-inc/carmarkd/rpc/fixtures"
	"github.com/bitmark-inc/carmarkd/rpc/listeners"
)

type Add struct{}
type AddArg struct {
	A, B int
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func TestNewRPCValidation(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	log := logger.New(fixtures.LogCategory)
	count := counter.Counter(0)
	s := rpc.NewServer()

	tests := []struct {
		configuration listeners.RPCConfiguration
		err           error
	}{
		{listeners.RPCConfiguration{MaximumConnections: 0, Listen: []string{"127.0.0.1:2130"}}, fault.MissingParameters},
		{listeners.RPCConfiguration{MaximumConnections: 5}, fault.MissingParameters},
		{listeners.RPCConfiguration{MaximumConnections: 5, Listen: []string{"localhost:2130"}}, fault.InvalidIpAddress},
		{listeners.RPCConfiguration{MaximumConnections: 5, Listen: []string{"*"}}, fault.InvalidIpAddress},
		{listeners.RPCConfiguration{MaximumConnections: 5, Listen: []string{""}}, fault.InvalidIpAddress},
		{listeners.RPCConfiguration{MaximumConnections: 5, Listen: []string{"127.0.0.1:2130", "[::1]:2130", "*:2130"}}, nil},
	}

	for i, test := range tests {
		_, err := listeners.NewRPC(&test.configuration, log, &count, s, &tls.Config{}, [32]byte{})
		assert.Equal(t, test.err, err, "%d", i)
	}
}

func TestRpcListenerServe(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	port := rand.Intn(30000) + 30000
	listen := fmt.Sprintf("127.0.0.1:%d", port)
	con := listeners.RPCConfiguration{
		MaximumConnections: 1,
		Listen:             []string{listen},
	}

	count := counter.Counter(0)

	s := rpc.NewServer()
	if err := s.Register(Add{}); nil != err {
		t.Fatalf("register with error: %s", err)
	}

	cer, key, err := fixtures.CertificatePair()
	if nil != err {
		t.Fatalf("certificate error: %s", err)
	}
	log := logger.New(fixtures.LogCategory)
	tlsConfig, fin, err := certificate.Get(log, "test", cer, key)
	if nil != err {
		t.Fatalf("get certificate with error: %s", err)
	}

	l, err := listeners.NewRPC(&con, log, &count, s, tlsConfig, fin)
	if !assert.Nil(t, err, "wrong NewRPC") {
		return
	}
	if !assert.Nil(t, l.Serve(), "wrong Serve") {
		return
	}
	defer l.Close()

	conn, err := tls.Dial("tcp", listen, &tls.Config{InsecureSkipVerify: true})
	if !assert.Nil(t, err, "wrong Dial") {
		return
	}
	client := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))

	var reply int
	err = client.Call("Add.Add", &AddArg{A: 17, B: 25}, &reply)
	assert.Nil(t, err, "wrong Call")
	assert.Equal(t, 42, reply, "wrong reply")
	assert.Equal(t, uint64(1), count.Uint64(), "wrong connection count")

	// over the limit: closed by the server
	extra, err := tls.Dial("tcp", listen, &tls.Config{InsecureSkipVerify: true})
	if nil == err {
		extraClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(extra))
		err = extraClient.Call("Add.Add", &AddArg{A: 1, B: 1}, &reply)
		assert.NotNil(t, err, "connection over limit was served")
		extraClient.Close()
	}

	client.Close()

	deadline := time.Now().Add(5 * time.Second)
	for !count.IsZero() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.True(t, count.IsZero(), "connection not released")
}
