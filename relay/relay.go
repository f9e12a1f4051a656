// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package relay

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/chain"
	"github.com/bitmark-inc/carmarkd/counter"
	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/messagebus"
	"github.com/bitmark-inc/carmarkd/record"
	"github.com/bitmark-inc/carmarkd/roles"
	"github.com/bitmark-inc/carmarkd/storage"
)

// DefaultMaxSkew - furthest allowed expiry in the future
const DefaultMaxSkew = time.Hour

// EventForwarded - name of the forwarded event
const EventForwarded = "RequestForwarded"

// outcome of a forwarded operation that succeeded
const outcomeOK = "ok"

// Handler - an engine that can apply forwarded operations
type Handler interface {
	Apply(trx storage.Transaction, actor *account.Account, op record.Operation) error
	Tags() []record.TagType
}

// ForwardedEvent - body of RequestForwarded
type ForwardedEvent struct {
	Signer    *account.Account `json:"signer"`
	Relayer   *account.Account `json:"relayer"`
	Nonce     uint64           `json:"nonce,string"`
	Operation string           `json:"operation"`
	Outcome   string           `json:"outcome"`
}

// Config - relay settings
type Config struct {
	Chain   string
	MaxSkew time.Duration
	Clock   func() time.Time
}

// Stats - submission counts since start
type Stats struct {
	Forwarded uint64 `json:"forwarded"`
	Failed    uint64 `json:"failed"`
	Rejected  uint64 `json:"rejected"`
}

// Relay - verifies meta requests and dispatches their operations
type Relay struct {
	sync.RWMutex

	log      *logger.L
	store    *storage.Store
	roles    *roles.Registry
	bus      *messagebus.Queue
	testing  bool
	maxSkew  time.Duration
	now      func() time.Time
	handlers map[record.TagType]Handler

	forwarded counter.Counter
	failed    counter.Counter
	rejected  counter.Counter
}

// New - create a relay for a chain
func New(store *storage.Store, roleRegistry *roles.Registry, bus *messagebus.Queue, config Config) (*Relay, error) {
	if !chain.Valid(config.Chain) {
		return nil, fault.InvalidChain
	}
	r := &Relay{
		log:      logger.New("relay"),
		store:    store,
		roles:    roleRegistry,
		bus:      bus,
		testing:  chain.IsTesting(config.Chain),
		maxSkew:  config.MaxSkew,
		now:      config.Clock,
		handlers: make(map[record.TagType]Handler),
	}
	if r.maxSkew <= 0 {
		r.maxSkew = DefaultMaxSkew
	}
	if nil == r.now {
		r.now = time.Now
	}
	return r, nil
}

// Register - route the operations of each handler to it
func (r *Relay) Register(handlers ...Handler) {
	r.Lock()
	defer r.Unlock()

	for _, h := range handlers {
		for _, tag := range h.Tags() {
			if _, ok := r.handlers[tag]; ok {
				r.log.Warnf("register: %s: replacing handler", record.OperationName(tag))
			}
			r.handlers[tag] = h
		}
	}
}

func (r *Relay) handler(tag record.TagType) (Handler, bool) {
	r.RLock()
	defer r.RUnlock()
	h, ok := r.handlers[tag]
	return h, ok
}

// Nonce - last accepted nonce of a signer, zero if none
func (r *Relay) Nonce(signer *account.Account) uint64 {
	if nil == signer || nil == signer.AccountInterface {
		return 0
	}
	n, _ := r.store.Pool.Nonces.GetN(signer.Bytes())
	return n
}

// Stats - current counts
func (r *Relay) Stats() Stats {
	return Stats{
		Forwarded: r.forwarded.Uint64(),
		Failed:    r.failed.Uint64(),
		Rejected:  r.rejected.Uint64(),
	}
}

// Submit - check a meta request and run its operation as the signer
//
// forwarded is true once the nonce has been consumed; err is then the
// outcome of the operation itself whose writes were discarded on failure.
// When forwarded is false nothing was written.
func (r *Relay) Submit(relayer *account.Account, request *record.MetaRequest) (bool, error) {
	forwarded, err := r.submit(relayer, request)
	if !forwarded {
		r.rejected.Increment()
		r.log.Warnf("rejected: relayer: %s  error: %s", relayer, err)
	} else if nil != err {
		r.failed.Increment()
	} else {
		r.forwarded.Increment()
	}
	return forwarded, err
}

func (r *Relay) submit(relayer *account.Account, request *record.MetaRequest) (bool, error) {
	if nil == request || nil == request.Signer || nil == request.Signer.AccountInterface || nil == request.Operation {
		return false, fault.MissingParameters
	}
	if !r.roles.HasRole(relayer, record.Relayer) {
		return false, fault.AccessDenied
	}
	signer := request.Signer
	if signer.IsTesting() != r.testing {
		return false, fault.WrongNetworkForPublicKey
	}

	now := r.now()
	if now.After(request.Expiry) {
		return false, fault.Expired
	}
	if request.Expiry.After(now.Add(r.maxSkew)) {
		return false, fault.ExpiryTooDistant
	}
	if err := request.Verify(); nil != err {
		return false, err
	}

	tag := request.Operation.Tag()
	h, ok := r.handler(tag)
	if !ok {
		return false, fault.OperationHandlerMissing
	}

	trx, err := r.store.Begin()
	if nil != err {
		return false, err
	}
	defer trx.Abort()

	key := signer.Bytes()
	last, _ := trx.GetN(r.store.Pool.Nonces, key)
	if request.Nonce <= last {
		return false, fault.ReplayRejected
	}
	trx.PutN(r.store.Pool.Nonces, key, request.Nonce)

	sp := trx.Savepoint()
	opErr := h.Apply(trx, signer, request.Operation)
	outcome := outcomeOK
	if nil != opErr {
		trx.RollbackTo(sp)
		outcome = opErr.Error()
	}

	e := ForwardedEvent{
		Signer:    signer,
		Relayer:   relayer,
		Nonce:     request.Nonce,
		Operation: record.OperationName(tag),
		Outcome:   outcome,
	}
	trx.OnCommit(func() {
		r.bus.SendJSON(EventForwarded, e)
	})
	if err := trx.Commit(); nil != err {
		return false, err
	}

	r.log.Infof("forwarded: %s  signer: %s  nonce: %d  outcome: %s", e.Operation, signer, request.Nonce, outcome)
	return true, opErr
}
