// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/carmarkd/command/carmark-cli/rpccalls"
	"github.com/bitmark-inc/carmarkd/record"
)

// sign offline: the nonce must be given
func runSign(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	signer, err := privateKeyFromString(c.String("key"), m.testnet)
	if nil != err {
		return err
	}

	request, err := makeRequest(&requestData{
		operation: c.String("operation"),
		params:    c.String("params"),
		nonce:     c.Uint64("nonce"),
		expiry:    c.Duration("expiry"),
		signer:    signer,
	}, time.Now())
	if nil != err {
		return err
	}

	return printJson(m.w, request)
}

func runSubmit(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	relayer, err := privateKeyFromString(c.String("relayer-key"), m.testnet)
	if nil != err {
		if ErrKeyRequired == err {
			return ErrRelayerRequired
		}
		return err
	}

	client, err := m.client()
	if nil != err {
		return err
	}
	defer client.Close()

	var request *record.MetaRequest
	if file := c.String("request"); "" != file {
		request, err = readRequest(file)
	} else {
		request, err = buildRequest(c, m, client)
	}
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "signer: %s  nonce: %d\n", request.Signer, request.Nonce)
	}

	reply, err := client.Submit(&rpccalls.SubmitData{
		Request: request,
		Relayer: relayer,
	})
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

// a zero nonce is replaced by the next one the node will accept
func buildRequest(c *cli.Context, m *metadata, client *rpccalls.Client) (*record.MetaRequest, error) {

	signer, err := privateKeyFromString(c.String("key"), m.testnet)
	if nil != err {
		return nil, err
	}

	nonce := c.Uint64("nonce")
	if 0 == nonce {
		last, err := client.GetNonce(signer.Account())
		if nil != err {
			return nil, err
		}
		nonce = last + 1
	}

	return makeRequest(&requestData{
		operation: c.String("operation"),
		params:    c.String("params"),
		nonce:     nonce,
		expiry:    c.Duration("expiry"),
		signer:    signer,
	}, time.Now())
}

// "-" reads standard input
func readRequest(file string) (*record.MetaRequest, error) {
	var data []byte
	var err error
	if "-" == file {
		data, err = ioutil.ReadAll(os.Stdin)
	} else {
		data, err = ioutil.ReadFile(file)
	}
	if nil != err {
		return nil, err
	}

	request := &record.MetaRequest{}
	err = request.UnmarshalJSON(data)
	if nil != err {
		return nil, err
	}
	return request, nil
}
