// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package escrow

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/asset"
	"github.com/bitmark-inc/carmarkd/digest"
	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/ledger"
	"github.com/bitmark-inc/carmarkd/messagebus"
	"github.com/bitmark-inc/carmarkd/record"
	"github.com/bitmark-inc/carmarkd/roles"
	"github.com/bitmark-inc/carmarkd/storage"
)

// DefaultTimeout - period before a party may cancel
const DefaultTimeout = 7 * 24 * time.Hour

// event names
const (
	EventCreated   = "EscrowCreated"
	EventFunded    = "EscrowFunded"
	EventReleased  = "EscrowReleased"
	EventCancelled = "EscrowCancelled"
	EventDisputed  = "EscrowDisputed"
	EventResolved  = "EscrowResolved"
)

const dealCounterKey = "deal"

// ResolvedEvent - body of EscrowResolved
type ResolvedEvent struct {
	Deal        *record.Deal     `json:"deal"`
	Resolver    *account.Account `json:"resolver"`
	FavorSeller bool             `json:"favorSeller"`
}

// Config - engine settings
type Config struct {
	Timeout time.Duration
	Clock   func() time.Time
}

// Engine - the escrow state machine
type Engine struct {
	log     *logger.L
	store   *storage.Store
	assets  *asset.Registry
	roles   *roles.Registry
	ledger  *ledger.Ledger
	custody account.Custody
	bus     *messagebus.Queue
	timeout time.Duration
	now     func() time.Time
}

// New - create an escrow engine
func New(store *storage.Store, assets *asset.Registry, roleRegistry *roles.Registry, l *ledger.Ledger, custody account.Custody, bus *messagebus.Queue, config Config) *Engine {
	e := &Engine{
		log:     logger.New("escrow"),
		store:   store,
		assets:  assets,
		roles:   roleRegistry,
		ledger:  l,
		custody: custody,
		bus:     bus,
		timeout: config.Timeout,
		now:     config.Clock,
	}
	if e.timeout <= 0 {
		e.timeout = DefaultTimeout
	}
	if nil == e.now {
		e.now = time.Now
	}
	return e
}

// Timeout - the configured cancellation period
func (e *Engine) Timeout() time.Duration {
	return e.timeout
}

// Get - committed deal
func (e *Engine) Get(id uint64) (*record.Deal, error) {
	packed := e.store.Pool.Deals.Get(storage.Uint64Key(id))
	if nil == packed {
		return nil, fault.DealNotFound
	}
	return record.Packed(packed).UnpackDeal()
}

// GetTx - deal including the transaction's writes
func (e *Engine) GetTx(trx storage.Transaction, id uint64) (*record.Deal, error) {
	packed := trx.Get(e.store.Pool.Deals, storage.Uint64Key(id))
	if nil == packed {
		return nil, fault.DealNotFound
	}
	return record.Packed(packed).UnpackDeal()
}

// OpenDeal - id of the committed open deal for an asset
func (e *Engine) OpenDeal(assetId digest.Digest) (uint64, bool) {
	return e.store.Pool.OpenDeals.GetN(assetId[:])
}

// HasOpenDealTx - true if the asset is held by a non-terminal deal
func (e *Engine) HasOpenDealTx(trx storage.Transaction, assetId digest.Digest) bool {
	return trx.Has(e.store.Pool.OpenDeals, assetId[:])
}

// Open - create a funded deal for an asset already in escrow custody
//
// used by the marketplace for an escrowed purchase
func (e *Engine) Open(trx storage.Transaction, listingId uint64, assetId digest.Digest, seller *account.Account, buyer *account.Account, amount uint64, payment uint64) (*record.Deal, error) {
	if 0 == amount {
		return nil, fault.InvalidAmount
	}
	if payment != amount {
		return nil, fault.PaymentMismatch
	}
	if e.HasOpenDealTx(trx, assetId) {
		return nil, fault.DealAlreadyOpen
	}
	a, err := e.assets.GetTx(trx, assetId)
	if nil != err {
		return nil, err
	}
	if !a.Owner.Equal(e.custody.Escrow) {
		return nil, fault.NotOwner
	}

	deal := e.newDeal(trx, listingId, assetId, seller, buyer, amount)
	e.emit(trx, EventCreated, deal)

	if err := e.ledger.Credit(trx, e.custody.Escrow, payment); nil != err {
		return nil, err
	}
	deal.Funded = payment
	deal.State = record.DealFunded
	e.put(trx, deal)

	e.log.Infof("open: deal: %d  listing: %d  asset: %s  amount: %d", deal.Id, listingId, assetId, amount)
	e.emit(trx, EventFunded, deal)
	return deal, nil
}

// CreateEscrow - seller places a verified asset into a deal with a buyer
func (e *Engine) CreateEscrow(seller *account.Account, assetId digest.Digest, buyer *account.Account, amount uint64) (*record.Deal, error) {
	var deal *record.Deal
	err := e.store.Update(func(trx storage.Transaction) error {
		var err error
		deal, err = e.CreateEscrowTx(trx, seller, assetId, buyer, amount)
		return err
	})
	return deal, err
}

// CreateEscrowTx - CreateEscrow inside an existing transaction
func (e *Engine) CreateEscrowTx(trx storage.Transaction, seller *account.Account, assetId digest.Digest, buyer *account.Account, amount uint64) (*record.Deal, error) {
	if nil == seller || nil == buyer || nil == buyer.AccountInterface {
		return nil, fault.MissingParameters
	}
	if 0 == amount {
		return nil, fault.InvalidAmount
	}
	if seller.Equal(buyer) {
		return nil, fault.SelfPurchase
	}
	a, err := e.assets.GetTx(trx, assetId)
	if nil != err {
		return nil, err
	}
	if !a.Verified {
		return nil, fault.NotVerified
	}
	if e.HasOpenDealTx(trx, assetId) {
		return nil, fault.DealAlreadyOpen
	}
	if !a.Owner.Equal(seller) {
		return nil, fault.NotOwner
	}

	if err := e.assets.Transfer(trx, assetId, seller, e.custody.Escrow); nil != err {
		return nil, err
	}
	deal := e.newDeal(trx, 0, assetId, seller, buyer, amount)
	e.put(trx, deal)

	e.log.Infof("create: deal: %d  asset: %s  seller: %s  buyer: %s  amount: %d", deal.Id, assetId, seller, buyer, amount)
	e.emit(trx, EventCreated, deal)
	return deal, nil
}

// FundEscrow - buyer pays the exact amount into a created deal
func (e *Engine) FundEscrow(buyer *account.Account, id uint64, payment uint64) error {
	return e.store.Update(func(trx storage.Transaction) error {
		return e.FundEscrowTx(trx, buyer, id, payment)
	})
}

// FundEscrowTx - FundEscrow inside an existing transaction
func (e *Engine) FundEscrowTx(trx storage.Transaction, buyer *account.Account, id uint64, payment uint64) error {
	deal, err := e.GetTx(trx, id)
	if nil != err {
		return err
	}
	if !deal.Buyer.Equal(buyer) {
		return fault.AccessDenied
	}
	if record.DealCreated != deal.State {
		return fault.StateConflict
	}
	if payment != deal.Amount {
		return fault.PaymentMismatch
	}

	if err := e.ledger.Credit(trx, e.custody.Escrow, payment); nil != err {
		return err
	}
	deal.Funded = payment
	deal.State = record.DealFunded
	e.put(trx, deal)

	e.log.Infof("fund: deal: %d  payment: %d", id, payment)
	e.emit(trx, EventFunded, deal)
	return nil
}

// ReleaseEscrow - verifier completes a funded deal
func (e *Engine) ReleaseEscrow(actor *account.Account, id uint64) error {
	return e.store.Update(func(trx storage.Transaction) error {
		return e.ReleaseEscrowTx(trx, actor, id)
	})
}

// ReleaseEscrowTx - ReleaseEscrow inside an existing transaction
func (e *Engine) ReleaseEscrowTx(trx storage.Transaction, actor *account.Account, id uint64) error {
	if !e.roles.HasRoleTx(trx, actor, record.Verifier) {
		return fault.AccessDenied
	}
	deal, err := e.GetTx(trx, id)
	if nil != err {
		return err
	}
	if record.DealFunded != deal.State {
		return fault.StateConflict
	}
	if err := e.settle(trx, deal, record.DealReleased); nil != err {
		return err
	}
	e.emit(trx, EventReleased, deal)
	return nil
}

// CancelEscrow - return the asset to the seller and any payment to the buyer
//
// an admin may cancel at any time, a party only once the timeout has passed
func (e *Engine) CancelEscrow(actor *account.Account, id uint64) error {
	return e.store.Update(func(trx storage.Transaction) error {
		return e.CancelEscrowTx(trx, actor, id)
	})
}

// CancelEscrowTx - CancelEscrow inside an existing transaction
func (e *Engine) CancelEscrowTx(trx storage.Transaction, actor *account.Account, id uint64) error {
	deal, err := e.GetTx(trx, id)
	if nil != err {
		return err
	}
	if deal.State.IsTerminal() || record.DealDisputed == deal.State {
		return fault.StateConflict
	}

	switch {
	case e.roles.HasRoleTx(trx, actor, record.Admin):
	case deal.IsParty(actor):
		if e.now().Before(deal.CreatedAt.Add(deal.Timeout)) {
			return fault.TooEarly
		}
	default:
		return fault.AccessDenied
	}

	if err := e.settle(trx, deal, record.DealCancelled); nil != err {
		return err
	}
	e.emit(trx, EventCancelled, deal)
	return nil
}

// DisputeEscrow - a party halts a funded deal for admin resolution
func (e *Engine) DisputeEscrow(actor *account.Account, id uint64, notes string) error {
	return e.store.Update(func(trx storage.Transaction) error {
		return e.DisputeEscrowTx(trx, actor, id, notes)
	})
}

// DisputeEscrowTx - DisputeEscrow inside an existing transaction
func (e *Engine) DisputeEscrowTx(trx storage.Transaction, actor *account.Account, id uint64, notes string) error {
	if len(notes) > record.MaxNotesLength {
		return fault.NotesTooLong
	}
	deal, err := e.GetTx(trx, id)
	if nil != err {
		return err
	}
	if !deal.IsParty(actor) {
		return fault.AccessDenied
	}
	if record.DealFunded != deal.State {
		return fault.StateConflict
	}

	deal.State = record.DealDisputed
	deal.Notes = notes
	e.put(trx, deal)

	e.log.Warnf("dispute: deal: %d  by: %s", id, actor)
	e.emit(trx, EventDisputed, deal)
	return nil
}

// ResolveDispute - admin settles a disputed deal
//
// in favour of the seller the deal is released, otherwise cancelled
func (e *Engine) ResolveDispute(actor *account.Account, id uint64, favorSeller bool) error {
	return e.store.Update(func(trx storage.Transaction) error {
		return e.ResolveDisputeTx(trx, actor, id, favorSeller)
	})
}

// ResolveDisputeTx - ResolveDispute inside an existing transaction
func (e *Engine) ResolveDisputeTx(trx storage.Transaction, actor *account.Account, id uint64, favorSeller bool) error {
	if !e.roles.HasRoleTx(trx, actor, record.Admin) {
		return fault.AccessDenied
	}
	deal, err := e.GetTx(trx, id)
	if nil != err {
		return err
	}
	if record.DealDisputed != deal.State {
		return fault.StateConflict
	}

	final := record.DealCancelled
	if favorSeller {
		final = record.DealReleased
	}
	if err := e.settle(trx, deal, final); nil != err {
		return err
	}

	r := ResolvedEvent{
		Deal:        deal,
		Resolver:    actor,
		FavorSeller: favorSeller,
	}
	trx.OnCommit(func() {
		e.bus.SendJSON(EventResolved, r)
	})
	return nil
}

// Apply - relay handler for the escrow operations
func (e *Engine) Apply(trx storage.Transaction, actor *account.Account, op record.Operation) error {
	switch o := op.(type) {
	case *record.CreateEscrow:
		_, err := e.CreateEscrowTx(trx, actor, o.AssetId, o.Buyer, o.Amount)
		return err
	case *record.FundEscrow:
		return e.FundEscrowTx(trx, actor, o.DealId, o.Payment)
	case *record.ReleaseEscrow:
		return e.ReleaseEscrowTx(trx, actor, o.DealId)
	case *record.CancelEscrow:
		return e.CancelEscrowTx(trx, actor, o.DealId)
	case *record.DisputeEscrow:
		return e.DisputeEscrowTx(trx, actor, o.DealId, o.Notes)
	case *record.ResolveDispute:
		return e.ResolveDisputeTx(trx, actor, o.DealId, o.FavorSeller)
	default:
		return fault.InvalidOperation
	}
}

// Tags - operations handled by Apply
func (e *Engine) Tags() []record.TagType {
	return []record.TagType{
		record.CreateEscrowTag,
		record.FundEscrowTag,
		record.ReleaseEscrowTag,
		record.CancelEscrowTag,
		record.DisputeEscrowTag,
		record.ResolveDisputeTag,
	}
}

func (e *Engine) newDeal(trx storage.Transaction, listingId uint64, assetId digest.Digest, seller *account.Account, buyer *account.Account, amount uint64) *record.Deal {
	deal := &record.Deal{
		Id:        storage.NextCounter(trx, e.store.Pool.Counters, dealCounterKey),
		ListingId: listingId,
		AssetId:   assetId,
		Seller:    seller,
		Buyer:     buyer,
		Amount:    amount,
		State:     record.DealCreated,
		CreatedAt: e.now().UTC(),
		Timeout:   e.timeout,
	}
	trx.PutN(e.store.Pool.OpenDeals, assetId[:], deal.Id)
	return deal
}

// settle - move a deal to a terminal state
//
// released: asset to buyer, payment to seller
// cancelled: asset to seller, payment back to buyer
func (e *Engine) settle(trx storage.Transaction, deal *record.Deal, final record.DealState) error {
	to, payee := deal.Buyer, deal.Seller
	if record.DealCancelled == final {
		to, payee = deal.Seller, deal.Buyer
	}

	deal.State = final
	if record.DealReleased == final {
		deal.ReleasedAt = e.now().UTC()
	}
	e.put(trx, deal)
	trx.Delete(e.store.Pool.OpenDeals, deal.AssetId[:])

	if err := e.assets.Transfer(trx, deal.AssetId, e.custody.Escrow, to); nil != err {
		e.log.Criticalf("settle: deal: %d  asset: %s  transfer error: %s", deal.Id, deal.AssetId, err)
		return err
	}
	if err := e.ledger.Transfer(trx, e.custody.Escrow, payee, deal.Funded); nil != err {
		e.log.Criticalf("settle: deal: %d  amount: %d  payment error: %s", deal.Id, deal.Funded, err)
		return err
	}

	e.log.Infof("settle: deal: %d  state: %s  asset to: %s  %d to: %s", deal.Id, final, to, deal.Funded, payee)
	return nil
}

func (e *Engine) put(trx storage.Transaction, deal *record.Deal) {
	trx.Put(e.store.Pool.Deals, storage.Uint64Key(deal.Id), deal.Pack())
}

func (e *Engine) emit(trx storage.Transaction, command string, deal *record.Deal) {
	d := *deal
	trx.OnCommit(func() {
		e.bus.SendJSON(command, &d)
	})
}
