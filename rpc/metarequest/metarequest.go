// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metarequest

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/record"
	"github.com/bitmark-inc/carmarkd/rpc/ratelimit"
)

const (
	rateLimitRelay = 200
	rateBurstRelay = 100
)

// Submitter - the relay engine as seen by the RPC
type Submitter interface {
	Submit(*account.Account, *record.MetaRequest) (bool, error)
	Nonce(*account.Account) uint64
}

// Relay - type for the RPC
type Relay struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Relay   Submitter
}

// New - create the relay RPC service
func New(log *logger.L, relay Submitter) *Relay {
	return &Relay{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitRelay, rateBurstRelay),
		Relay:   relay,
	}
}

// Relay submit
// ------------

// SubmitArguments - a signed meta request plus the relayer's
// signature over the same message
type SubmitArguments struct {
	Relayer          *account.Account    `json:"relayer"`
	RelayerSignature account.Signature   `json:"relayerSignature"`
	Request          *record.MetaRequest `json:"request"`
}

// SubmitReply - outcome of a submission
//
// Forwarded means the nonce was consumed; Outcome is then empty on
// success or holds the text of the operation's error.
type SubmitReply struct {
	Forwarded bool   `json:"forwarded"`
	Outcome   string `json:"outcome,omitempty"`
	Nonce     uint64 `json:"nonce,string"`
}

// Submit - verify the relayer and forward the request
func (r *Relay) Submit(arguments *SubmitArguments, reply *SubmitReply) error {

	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Relayer || nil == arguments.Relayer.AccountInterface || nil == arguments.Request || nil == arguments.Request.Signer {
		return fault.MissingParameters
	}

	log := r.Log
	log.Infof("Relay.Submit: relayer: %s  signer: %s  nonce: %d", arguments.Relayer, arguments.Request.Signer, arguments.Request.Nonce)

	message, err := arguments.Request.Message()
	if nil != err {
		return err
	}
	err = arguments.Relayer.CheckSignature(message, arguments.RelayerSignature)
	if nil != err {
		log.Warnf("relayer signature: %s", err)
		return fault.InvalidSignature
	}

	forwarded, err := r.Relay.Submit(arguments.Relayer, arguments.Request)
	if !forwarded {
		return err
	}

	reply.Forwarded = true
	reply.Nonce = arguments.Request.Nonce
	if nil != err {
		reply.Outcome = err.Error()
	}
	return nil
}

// Relay nonce
// -----------

// NonceArguments - the signer to query
type NonceArguments struct {
	Signer *account.Account `json:"signer"`
}

// NonceReply - last accepted nonce
type NonceReply struct {
	Nonce uint64 `json:"nonce,string"`
}

// Nonce - last nonce accepted for a signer, the next request must exceed it
func (r *Relay) Nonce(arguments *NonceArguments, reply *NonceReply) error {

	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Signer {
		return fault.MissingParameters
	}

	reply.Nonce = r.Relay.Nonce(arguments.Signer)
	return nil
}
