// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/json"
	"time"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/util"
)

// MetaRequest - an operation signed by its principal for a relay to forward
type MetaRequest struct {
	Signer    *account.Account
	Operation Operation
	Nonce     uint64
	Expiry    time.Time
	Signature account.Signature
}

// Message - the canonical bytes covered by the signature
//
// Varint64(tag) ++ Varint64(length) ++ packed operation ++
// Varint64(nonce) ++ Varint64(expiry in unix seconds)
func (request *MetaRequest) Message() (Packed, error) {
	if nil == request.Operation {
		return nil, fault.InvalidOperation
	}
	message := util.ToVarint64(uint64(MetaRequestTag))
	message = appendBytes(message, request.Operation.Pack())
	message = appendUint64(message, request.Nonce)
	return appendTime(message, request.Expiry), nil
}

// Sign - fill in signer and signature
func (request *MetaRequest) Sign(privateKey *account.PrivateKey) error {
	request.Signer = privateKey.Account()
	message, err := request.Message()
	if nil != err {
		return err
	}
	request.Signature = privateKey.Sign(message)
	return nil
}

// Verify - check the signature against the signer
func (request *MetaRequest) Verify() error {
	if nil == request.Signer || nil == request.Signer.AccountInterface {
		return fault.InvalidSignature
	}
	if len(request.Signature) > maxSignatureLength {
		return fault.SignatureTooLong
	}
	message, err := request.Message()
	if nil != err {
		return err
	}
	return request.Signer.CheckSignature(message, request.Signature)
}

// wire form: the operation travels as its packed hex
type metaRequestJSON struct {
	Signer    *account.Account  `json:"signer"`
	Operation Packed            `json:"operation"`
	Nonce     uint64            `json:"nonce,string"`
	Expiry    int64             `json:"expiry"`
	Signature account.Signature `json:"signature"`
}

// MarshalJSON - convert to the wire form
func (request MetaRequest) MarshalJSON() ([]byte, error) {
	if nil == request.Operation {
		return nil, fault.InvalidOperation
	}
	return json.Marshal(metaRequestJSON{
		Signer:    request.Signer,
		Operation: request.Operation.Pack(),
		Nonce:     request.Nonce,
		Expiry:    request.Expiry.Unix(),
		Signature: request.Signature,
	})
}

// UnmarshalJSON - convert from the wire form
func (request *MetaRequest) UnmarshalJSON(s []byte) error {
	var m metaRequestJSON
	if err := json.Unmarshal(s, &m); nil != err {
		return err
	}
	if nil == m.Signer {
		return fault.MissingParameters
	}
	op, err := m.Operation.UnpackOperation()
	if nil != err {
		return err
	}
	request.Signer = m.Signer
	request.Operation = op
	request.Nonce = m.Nonce
	request.Expiry = time.Unix(m.Expiry, 0).UTC()
	request.Signature = m.Signature
	return nil
}
