// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/asset"
	"github.com/bitmark-inc/carmarkd/digest"
	"github.com/bitmark-inc/carmarkd/escrow"
	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/ledger"
	"github.com/bitmark-inc/carmarkd/messagebus"
	"github.com/bitmark-inc/carmarkd/record"
	"github.com/bitmark-inc/carmarkd/storage"
)

// DefaultFeeRateBps - 2%
const DefaultFeeRateBps = 200

// event names
const (
	EventCreated   = "ListingCreated"
	EventUpdated   = "ListingUpdated"
	EventCancelled = "ListingCancelled"
	EventSold      = "ListingSold"
	EventExpired   = "ListingExpired"
)

const listingCounterKey = "listing"

// SoldEvent - body of ListingSold
type SoldEvent struct {
	Listing      *record.Listing  `json:"listing"`
	Buyer        *account.Account `json:"buyer"`
	Fee          uint64           `json:"fee"`
	SellerAmount uint64           `json:"sellerAmount"`
	DealId       uint64           `json:"dealId,omitempty"`
}

// Config - marketplace settings
type Config struct {
	FeeRateBps      uint64        // used when a listing gives zero
	ListingDuration time.Duration // zero: listings never expire
	Clock           func() time.Time
}

// Market - the listing engine
type Market struct {
	feeRate  uint64 // atomic, keep first for alignment
	log      *logger.L
	store    *storage.Store
	assets   *asset.Registry
	escrow   *escrow.Engine
	ledger   *ledger.Ledger
	custody  account.Custody
	bus      *messagebus.Queue
	duration time.Duration
	now      func() time.Time
}

// New - create a marketplace
func New(store *storage.Store, assets *asset.Registry, escrowEngine *escrow.Engine, l *ledger.Ledger, custody account.Custody, bus *messagebus.Queue, config Config) (*Market, error) {
	if config.FeeRateBps > record.MaxFeeRateBps {
		return nil, fault.InvalidFeeRate
	}
	m := &Market{
		log:      logger.New("market"),
		store:    store,
		assets:   assets,
		escrow:   escrowEngine,
		ledger:   l,
		custody:  custody,
		bus:      bus,
		feeRate:  config.FeeRateBps,
		duration: config.ListingDuration,
		now:      config.Clock,
	}
	if 0 == m.feeRate {
		m.feeRate = DefaultFeeRateBps
	}
	if nil == m.now {
		m.now = time.Now
	}
	return m, nil
}

// FeeRateBps - the default fee rate
func (m *Market) FeeRateBps() uint64 {
	return atomic.LoadUint64(&m.feeRate)
}

// SetFeeRateBps - replace the default rate, zero restores DefaultFeeRateBps
//
// existing listings keep the rate they were created with
func (m *Market) SetFeeRateBps(feeRateBps uint64) error {
	if feeRateBps > record.MaxFeeRateBps {
		return fault.InvalidFeeRate
	}
	if 0 == feeRateBps {
		feeRateBps = DefaultFeeRateBps
	}
	old := atomic.SwapUint64(&m.feeRate, feeRateBps)
	if old != feeRateBps {
		m.log.Infof("default fee rate: %d -> %d", old, feeRateBps)
	}
	return nil
}

// Get - committed listing
func (m *Market) Get(id uint64) (*record.Listing, error) {
	packed := m.store.Pool.Listings.Get(storage.Uint64Key(id))
	if nil == packed {
		return nil, fault.ListingNotFound
	}
	return record.Packed(packed).UnpackListing()
}

// GetTx - listing including the transaction's writes
func (m *Market) GetTx(trx storage.Transaction, id uint64) (*record.Listing, error) {
	packed := trx.Get(m.store.Pool.Listings, storage.Uint64Key(id))
	if nil == packed {
		return nil, fault.ListingNotFound
	}
	return record.Packed(packed).UnpackListing()
}

// ActiveListing - id of the committed active listing for an asset
func (m *Market) ActiveListing(assetId digest.Digest) (uint64, bool) {
	return m.store.Pool.ActiveListings.GetN(assetId[:])
}

// CreateListing - offer a verified asset, zero fee rate selects the default
func (m *Market) CreateListing(seller *account.Account, assetId digest.Digest, price uint64, feeRateBps uint64) (*record.Listing, error) {
	var listing *record.Listing
	err := m.store.Update(func(trx storage.Transaction) error {
		var err error
		listing, err = m.CreateListingTx(trx, seller, assetId, price, feeRateBps)
		return err
	})
	return listing, err
}

// CreateListingTx - CreateListing inside an existing transaction
func (m *Market) CreateListingTx(trx storage.Transaction, seller *account.Account, assetId digest.Digest, price uint64, feeRateBps uint64) (*record.Listing, error) {
	if nil == seller || nil == seller.AccountInterface {
		return nil, fault.MissingParameters
	}
	if 0 == price {
		return nil, fault.InvalidPrice
	}
	if 0 == feeRateBps {
		feeRateBps = m.FeeRateBps()
	}
	if feeRateBps > record.MaxFeeRateBps {
		return nil, fault.InvalidFeeRate
	}

	a, err := m.assets.GetTx(trx, assetId)
	if nil != err {
		return nil, err
	}
	if !a.Verified {
		return nil, fault.NotVerified
	}
	if trx.Has(m.store.Pool.ActiveListings, assetId[:]) {
		return nil, fault.AlreadyListed
	}
	if m.escrow.HasOpenDealTx(trx, assetId) {
		return nil, fault.DealAlreadyOpen
	}
	if !a.Owner.Equal(seller) {
		return nil, fault.NotOwner
	}

	if err := m.assets.Transfer(trx, assetId, seller, m.custody.Marketplace); nil != err {
		return nil, err
	}

	now := m.now().UTC()
	listing := &record.Listing{
		Id:         storage.NextCounter(trx, m.store.Pool.Counters, listingCounterKey),
		AssetId:    assetId,
		Seller:     seller,
		Price:      price,
		FeeRateBps: feeRateBps,
		Status:     record.ListingActive,
		CreatedAt:  now,
	}
	if 0 != m.duration {
		listing.ExpiresAt = now.Add(m.duration)
	}
	m.put(trx, listing)
	trx.PutN(m.store.Pool.ActiveListings, assetId[:], listing.Id)

	m.log.Infof("create: listing: %d  asset: %s  price: %d  fee rate: %d", listing.Id, assetId, price, feeRateBps)
	m.emit(trx, EventCreated, listing)
	return listing, nil
}

// UpdateListing - seller changes the price of an active listing
func (m *Market) UpdateListing(actor *account.Account, id uint64, price uint64) error {
	return m.store.Update(func(trx storage.Transaction) error {
		return m.UpdateListingTx(trx, actor, id, price)
	})
}

// UpdateListingTx - UpdateListing inside an existing transaction
func (m *Market) UpdateListingTx(trx storage.Transaction, actor *account.Account, id uint64, price uint64) error {
	if 0 == price {
		return fault.InvalidPrice
	}
	listing, err := m.sellerListing(trx, actor, id)
	if nil != err {
		return err
	}

	listing.Price = price
	m.put(trx, listing)

	m.log.Infof("update: listing: %d  price: %d", id, price)
	m.emit(trx, EventUpdated, listing)
	return nil
}

// CancelListing - seller withdraws an active listing and gets the asset back
func (m *Market) CancelListing(actor *account.Account, id uint64) error {
	return m.store.Update(func(trx storage.Transaction) error {
		return m.CancelListingTx(trx, actor, id)
	})
}

// CancelListingTx - CancelListing inside an existing transaction
func (m *Market) CancelListingTx(trx storage.Transaction, actor *account.Account, id uint64) error {
	listing, err := m.sellerListing(trx, actor, id)
	if nil != err {
		return err
	}
	if err := m.close(trx, listing, record.ListingCancelled, listing.Seller); nil != err {
		return err
	}
	m.emit(trx, EventCancelled, listing)
	return nil
}

// PurchaseListing - buy at the listed price with immediate settlement
//
// the fee is credited to the treasury and the remainder to the seller
func (m *Market) PurchaseListing(buyer *account.Account, id uint64, payment uint64) error {
	return m.store.Update(func(trx storage.Transaction) error {
		return m.PurchaseListingTx(trx, buyer, id, payment)
	})
}

// PurchaseListingTx - PurchaseListing inside an existing transaction
func (m *Market) PurchaseListingTx(trx storage.Transaction, buyer *account.Account, id uint64, payment uint64) error {
	listing, err := m.purchasable(trx, buyer, id, payment)
	if nil != err {
		return err
	}

	fee, sellerAmount := SplitFee(listing.Price, listing.FeeRateBps)
	if err := m.close(trx, listing, record.ListingSold, buyer); nil != err {
		return err
	}
	if err := m.ledger.Credit(trx, m.custody.Treasury, fee); nil != err {
		return err
	}
	if err := m.ledger.Credit(trx, listing.Seller, sellerAmount); nil != err {
		return err
	}

	m.log.Infof("sold: listing: %d  buyer: %s  fee: %d  seller amount: %d", id, buyer, fee, sellerAmount)
	e := SoldEvent{
		Listing:      listing,
		Buyer:        buyer,
		Fee:          fee,
		SellerAmount: sellerAmount,
	}
	trx.OnCommit(func() {
		m.bus.SendJSON(EventSold, e)
	})
	return nil
}

// PurchaseWithEscrow - buy at the listed price with the payment held in escrow
//
// returns the funded deal
func (m *Market) PurchaseWithEscrow(buyer *account.Account, id uint64, payment uint64) (*record.Deal, error) {
	var deal *record.Deal
	err := m.store.Update(func(trx storage.Transaction) error {
		var err error
		deal, err = m.PurchaseWithEscrowTx(trx, buyer, id, payment)
		return err
	})
	return deal, err
}

// PurchaseWithEscrowTx - PurchaseWithEscrow inside an existing transaction
func (m *Market) PurchaseWithEscrowTx(trx storage.Transaction, buyer *account.Account, id uint64, payment uint64) (*record.Deal, error) {
	listing, err := m.purchasable(trx, buyer, id, payment)
	if nil != err {
		return nil, err
	}

	if err := m.close(trx, listing, record.ListingSold, m.custody.Escrow); nil != err {
		return nil, err
	}
	deal, err := m.escrow.Open(trx, listing.Id, listing.AssetId, listing.Seller, buyer, listing.Price, payment)
	if nil != err {
		return nil, err
	}

	m.log.Infof("sold: listing: %d  buyer: %s  escrow deal: %d", id, buyer, deal.Id)
	e := SoldEvent{
		Listing:      listing,
		Buyer:        buyer,
		SellerAmount: listing.Price,
		DealId:       deal.Id,
	}
	trx.OnCommit(func() {
		m.bus.SendJSON(EventSold, e)
	})
	return deal, nil
}

// ExpireListings - return assets of active listings whose time has passed
//
// returns the number of listings expired
func (m *Market) ExpireListings(now time.Time) (int, error) {
	keys := [][]byte{}
	err := m.store.Pool.ActiveListings.NewFetchCursor().Map(func(key []byte, value []byte) error {
		keys = append(keys, key)
		return nil
	})
	if nil != err {
		return 0, err
	}
	if 0 == len(keys) {
		return 0, nil
	}

	count := 0
	err = m.store.Update(func(trx storage.Transaction) error {
		count = 0
		for _, key := range keys {
			id, ok := trx.GetN(m.store.Pool.ActiveListings, key)
			if !ok {
				continue
			}
			listing, err := m.GetTx(trx, id)
			if nil != err {
				return err
			}
			if !expired(listing, now) {
				continue
			}
			if err := m.close(trx, listing, record.ListingExpired, listing.Seller); nil != err {
				return err
			}
			m.log.Infof("expired: listing: %d  asset: %s", listing.Id, listing.AssetId)
			m.emit(trx, EventExpired, listing)
			count += 1
		}
		return nil
	})
	if nil != err {
		return 0, err
	}
	return count, nil
}

// Apply - relay handler for the listing operations
func (m *Market) Apply(trx storage.Transaction, actor *account.Account, op record.Operation) error {
	switch o := op.(type) {
	case *record.CreateListing:
		_, err := m.CreateListingTx(trx, actor, o.AssetId, o.Price, o.FeeRateBps)
		return err
	case *record.UpdateListing:
		return m.UpdateListingTx(trx, actor, o.ListingId, o.Price)
	case *record.CancelListing:
		return m.CancelListingTx(trx, actor, o.ListingId)
	case *record.PurchaseListing:
		return m.PurchaseListingTx(trx, actor, o.ListingId, o.Payment)
	case *record.PurchaseWithEscrow:
		_, err := m.PurchaseWithEscrowTx(trx, actor, o.ListingId, o.Payment)
		return err
	default:
		return fault.InvalidOperation
	}
}

// Tags - operations handled by Apply
func (m *Market) Tags() []record.TagType {
	return []record.TagType{
		record.CreateListingTag,
		record.UpdateListingTag,
		record.CancelListingTag,
		record.PurchaseListingTag,
		record.PurchaseWithEscrowTag,
	}
}

// an active unexpired listing that the actor is selling
//
// once past expiry only the sweeper may close it, as Expired
func (m *Market) sellerListing(trx storage.Transaction, actor *account.Account, id uint64) (*record.Listing, error) {
	listing, err := m.GetTx(trx, id)
	if nil != err {
		return nil, err
	}
	if !listing.Seller.Equal(actor) {
		return nil, fault.AccessDenied
	}
	if record.ListingActive != listing.Status || expired(listing, m.now()) {
		return nil, fault.StateConflict
	}
	return listing, nil
}

// an active unexpired listing that the buyer may pay for
func (m *Market) purchasable(trx storage.Transaction, buyer *account.Account, id uint64, payment uint64) (*record.Listing, error) {
	if nil == buyer || nil == buyer.AccountInterface {
		return nil, fault.MissingParameters
	}
	listing, err := m.GetTx(trx, id)
	if nil != err {
		return nil, err
	}
	if record.ListingActive != listing.Status || expired(listing, m.now()) {
		return nil, fault.StateConflict
	}
	if listing.Seller.Equal(buyer) {
		return nil, fault.SelfPurchase
	}
	if payment != listing.Price {
		return nil, fault.PaymentMismatch
	}
	return listing, nil
}

// move a listing to a terminal status and the asset out of custody
func (m *Market) close(trx storage.Transaction, listing *record.Listing, status record.ListingStatus, to *account.Account) error {
	listing.Status = status
	m.put(trx, listing)
	trx.Delete(m.store.Pool.ActiveListings, listing.AssetId[:])

	if err := m.assets.Transfer(trx, listing.AssetId, m.custody.Marketplace, to); nil != err {
		m.log.Criticalf("close: listing: %d  asset: %s  transfer error: %s", listing.Id, listing.AssetId, err)
		return err
	}
	return nil
}

func (m *Market) put(trx storage.Transaction, listing *record.Listing) {
	trx.Put(m.store.Pool.Listings, storage.Uint64Key(listing.Id), listing.Pack())
}

func (m *Market) emit(trx storage.Transaction, command string, listing *record.Listing) {
	l := *listing
	trx.OnCommit(func() {
		m.bus.SendJSON(command, &l)
	})
}

func expired(listing *record.Listing, now time.Time) bool {
	return !listing.ExpiresAt.IsZero() && now.After(listing.ExpiresAt)
}
