// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/asset"
	"github.com/bitmark-inc/carmarkd/messagebus"
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

type fixture struct {
	store    *storage.Store
	bus      *messagebus.Queue
	roles    *roles.Registry
	assets   *asset.Registry
	admin    *account.Account
	verifier *account.Account
}

func setup(t *testing.T) *fixture {
	store, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("open store error: %s", err)
	}
	bus := messagebus.New(100)
	r := roles.New(store, bus)

	f := &fixture{
		store:    store,
		bus:      bus,
		roles:    r,
		assets:   asset.New(store, r, bus),
		admin:    newAccount(t),
		verifier: newAccount(t),
	}
	if _, err := r.Bootstrap([]*account.Account{f.admin}, []*account.Account{f.verifier}, nil); nil != err {
		t.Fatalf("bootstrap error: %s", err)
	}
	f.drain()
	return f
}

// discard queued events
func (f *fixture) drain() {
	for 0 != len(f.bus.Chan()) {
		<-f.bus.Chan()
	}
}
