// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market_test

import (
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/asset"
	"github.com/bitmark-inc/carmarkd/digest"
	"github.com/bitmark-inc/carmarkd/escrow"
	"github.com/bitmark-inc/carmarkd/ledger"
	"github.com/bitmark-inc/carmarkd/market"
	"github.com/bitmark-inc/carmarkd/messagebus"
	"github.com/bitmark-inc/carmarkd/record"
	"github.com/bitmark-inc/carmarkd/roles"
	"github.com/bitmark-inc/carmarkd/storage"
)

const (
	testingDirName = "testing"
)

func TestMain(m *testing.M) {
	os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)
	_ = logger.Initialise(logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	rc := m.Run()
	logger.Finalise()
	os.RemoveAll(testingDirName)
	os.Exit(rc)
}

func newAccount(t *testing.T) *account.Account {
	key, err := account.NewPrivateKey(true)
	if nil != err {
		t.Fatalf("generate key error: %s", err)
	}
	return key.Account()
}

// settable time source
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time {
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type fixture struct {
	store    *storage.Store
	bus      *messagebus.Queue
	roles    *roles.Registry
	assets   *asset.Registry
	ledger   *ledger.Ledger
	custody  account.Custody
	escrow   *escrow.Engine
	market   *market.Market
	clock    *clock
	admin    *account.Account
	verifier *account.Account
	seller   *account.Account
	buyer    *account.Account
}

func setup(t *testing.T) *fixture {
	store, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("open store error: %s", err)
	}
	bus := messagebus.New(1000)
	r := roles.New(store, bus)
	assets := asset.New(store, r, bus)
	l := ledger.New(store)
	custody := account.NewCustody(true, nil)
	c := &clock{now: time.Unix(1600000000, 0).UTC()}

	f := &fixture{
		store:    store,
		bus:      bus,
		roles:    r,
		assets:   assets,
		ledger:   l,
		custody:  custody,
		escrow:   escrow.New(store, assets, r, l, custody, bus, escrow.Config{Clock: c.Now}),
		clock:    c,
		admin:    newAccount(t),
		verifier: newAccount(t),
		seller:   newAccount(t),
		buyer:    newAccount(t),
	}
	f.market, err = market.New(store, assets, f.escrow, l, custody, bus, market.Config{
		FeeRateBps:      200,
		ListingDuration: 30 * 24 * time.Hour,
		Clock:           c.Now,
	})
	if nil != err {
		t.Fatalf("market error: %s", err)
	}
	if _, err := r.Bootstrap([]*account.Account{f.admin}, []*account.Account{f.verifier}, nil); nil != err {
		t.Fatalf("bootstrap error: %s", err)
	}
	return f
}

// mint a verified asset for the seller
func (f *fixture) mintVerified(t *testing.T, externalId string) digest.Digest {
	id, err := f.assets.Mint(f.seller, externalId, "")
	if nil != err {
		t.Fatalf("mint error: %s", err)
	}
	if err := f.assets.SetVerified(f.verifier, id, true); nil != err {
		t.Fatalf("verify error: %s", err)
	}
	return id
}

// an active listing of a verified asset
func (f *fixture) listed(t *testing.T, externalId string, price uint64) (digest.Digest, *record.Listing) {
	id := f.mintVerified(t, externalId)
	listing, err := f.market.CreateListing(f.seller, id, price, 0)
	if nil != err {
		t.Fatalf("create listing error: %s", err)
	}
	return id, listing
}

func (f *fixture) owner(t *testing.T, id digest.Digest) *account.Account {
	a, err := f.assets.Get(id)
	if nil != err {
		t.Fatalf("get asset error: %s", err)
	}
	return a.Owner
}

func (f *fixture) status(t *testing.T, listingId uint64) record.ListingStatus {
	listing, err := f.market.Get(listingId)
	if nil != err {
		t.Fatalf("get listing error: %s", err)
	}
	return listing.Status
}
