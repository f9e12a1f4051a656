// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/chain"
)

func writeConfiguration(t *testing.T, content string) (string, string, func()) {
	dir, err := ioutil.TempDir("", "carmarkd-test")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	fileName := filepath.Join(dir, "carmarkd.conf")
	if err := ioutil.WriteFile(fileName, []byte(content), 0600); nil != err {
		t.Fatalf("write error: %s", err)
	}
	return dir, fileName, func() { _ = os.RemoveAll(dir) }
}

func testAccount(t *testing.T, test bool) string {
	key, err := account.NewPrivateKey(test)
	if nil != err {
		t.Fatalf("key error: %s", err)
	}
	return key.Account().String()
}

func TestGetConfiguration(t *testing.T) {
	admin := testAccount(t, true)
	relayer := testAccount(t, true)

	content := fmt.Sprintf(`
local M = {}
M.data_directory = "."
M.chain = "Testing"
M.fee_rate_bps = 150
M.escrow_timeout = "72h"
M.listing_duration = "720h"
M.bootstrap = {
    admins = { "%s" },
    relayers = { "%s" },
}
M.client_rpc = {
    maximum_connections = 3,
    listen = { "127.0.0.1:2130" },
}
M.logging = {
    size = 2048,
    count = 3,
    levels = {
        DEFAULT = "info",
    },
}
return M
`, admin, relayer)

	dir, fileName, cleanup := writeConfiguration(t, content)
	defer cleanup()

	options, err := getConfiguration(fileName)
	if !assert.Nil(t, err, "wrong getConfiguration") {
		return
	}

	assert.Equal(t, chain.Testing, options.Chain, "wrong chain")
	assert.Equal(t, uint64(150), options.FeeRateBps, "wrong fee")
	assert.Equal(t, filepath.Join(dir, defaultLevelDBDirectory, defaultTestingDatabase), options.Database.Name, "wrong database")
	assert.Equal(t, filepath.Join(dir, defaultCertificateFile), options.ClientRPC.Certificate, "wrong certificate path")
	assert.Equal(t, filepath.Join(dir, defaultPublishPublicKeyFile), options.Publishing.PublicKey, "wrong publish key path")
	assert.Equal(t, uint64(3), options.ClientRPC.MaximumConnections, "wrong connections")
	assert.Equal(t, []string{"127.0.0.1:2130"}, options.ClientRPC.Listen, "wrong listen")
	assert.Equal(t, 3, options.Logging.Count, "wrong log count")
	assert.Equal(t, "info", options.Logging.Levels["DEFAULT"], "wrong log level")

	s, err := options.settings()
	if !assert.Nil(t, err, "wrong settings") {
		return
	}
	assert.Equal(t, 72*time.Hour, s.EscrowTimeout, "wrong escrow timeout")
	assert.Equal(t, time.Hour, s.MetaRequestMaxSkew, "wrong default skew")
	assert.Equal(t, 720*time.Hour, s.ListingDuration, "wrong listing duration")
	assert.Equal(t, time.Minute, s.ListingSweepInterval, "wrong sweep interval")
	assert.Nil(t, s.Treasury, "treasury without configuration")
	assert.Equal(t, 1, len(s.Admins), "wrong admins")
	assert.Equal(t, admin, s.Admins[0].String(), "wrong admin")
	assert.Equal(t, 0, len(s.Verifiers), "wrong verifiers")
	assert.Equal(t, relayer, s.Relayers[0].String(), "wrong relayer")
}

func TestGetConfigurationErrors(t *testing.T) {
	tests := []string{
		`return { data_directory = ".", chain = "moon" }`,
		`return { data_directory = "", chain = "local" }`,
		`return { data_directory = ".", chain = "local", fee_rate_bps = 10001 }`,
		`return { data_directory = ".", chain = "local", database = { name = "sub/dir.leveldb" } }`,
		`return "not a table"`,
	}

	for i, content := range tests {
		_, fileName, cleanup := writeConfiguration(t, content)
		_, err := getConfiguration(fileName)
		assert.NotNil(t, err, "%d: expected error", i)
		cleanup()
	}
}

func TestSettingsErrors(t *testing.T) {
	live := testAccount(t, false)

	tests := []Configuration{
		{Chain: chain.Local, EscrowTimeout: "soon", MetaRequestMaxSkew: "1h", ListingDuration: "0s", ListingSweepInterval: "1m"},
		{Chain: chain.Local, EscrowTimeout: "-1h", MetaRequestMaxSkew: "1h", ListingDuration: "0s", ListingSweepInterval: "1m"},
		{Chain: chain.Local, EscrowTimeout: "1h", MetaRequestMaxSkew: "1h", ListingDuration: "0s", ListingSweepInterval: "1m", Treasury: "junk"},
		{Chain: chain.Local, EscrowTimeout: "1h", MetaRequestMaxSkew: "1h", ListingDuration: "0s", ListingSweepInterval: "1m", Bootstrap: BootstrapType{Admins: []string{live}}},
	}

	for i, options := range tests {
		_, err := options.settings()
		assert.NotNil(t, err, "%d: expected error", i)
	}
}
