// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/record"
)

// requestData - what is needed to build a signed meta request
type requestData struct {
	operation string
	params    string
	nonce     uint64
	expiry    time.Duration
	signer    *account.PrivateKey
}

// decode the operation parameters and sign the resulting request
func makeRequest(data *requestData, now time.Time) (*record.MetaRequest, error) {

	if "" == data.operation {
		return nil, ErrOperationMissing
	}
	if data.expiry <= 0 {
		return nil, ErrExpiryNotFuture
	}
	if nil == data.signer {
		return nil, ErrKeyRequired
	}

	operation, err := record.NewOperation(data.operation)
	if nil != err {
		return nil, err
	}

	params := strings.TrimSpace(data.params)
	if "" == params {
		params = "{}"
	}
	err = json.Unmarshal([]byte(params), operation)
	if nil != err {
		return nil, err
	}

	request := &record.MetaRequest{
		Operation: operation,
		Nonce:     data.nonce,
		Expiry:    now.Add(data.expiry).UTC(),
	}
	err = request.Sign(data.signer)
	if nil != err {
		return nil, err
	}
	return request, nil
}
