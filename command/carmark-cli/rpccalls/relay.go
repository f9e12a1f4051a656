// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/record"
	"github.com/bitmark-inc/carmarkd/rpc/metarequest"
)

// SubmitData - a signed request and the relayer that co-signs it
type SubmitData struct {
	Request *record.MetaRequest
	Relayer *account.PrivateKey
}

// Submit - co-sign a meta request as relayer and send it
func (client *Client) Submit(submitConfig *SubmitData) (*metarequest.SubmitReply, error) {

	message, err := submitConfig.Request.Message()
	if nil != err {
		return nil, err
	}

	submitArgs := metarequest.SubmitArguments{
		Relayer:          submitConfig.Relayer.Account(),
		RelayerSignature: submitConfig.Relayer.Sign(message),
		Request:          submitConfig.Request,
	}

	client.printJson("Submit Request", submitArgs)

	reply := &metarequest.SubmitReply{}
	err = client.client.Call("Relay.Submit", submitArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Submit Reply", reply)

	return reply, nil
}

// GetNonce - last nonce accepted for a signer
func (client *Client) GetNonce(signer *account.Account) (uint64, error) {

	nonceArgs := metarequest.NonceArguments{
		Signer: signer,
	}

	client.printJson("Nonce Request", nonceArgs)

	reply := &metarequest.NonceReply{}
	err := client.client.Call("Relay.Nonce", nonceArgs, reply)
	if nil != err {
		return 0, err
	}

	client.printJson("Nonce Reply", reply)

	return reply.Nonce, nil
}
