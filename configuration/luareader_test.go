// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/carmarkd/configuration"
	"github.com/bitmark-inc/carmarkd/fault"
)

type testRPC struct {
	MaximumConnections int      `gluamapper:"maximum_connections"`
	Listen             []string `gluamapper:"listen"`
}

type testConfiguration struct {
	Chain      string            `gluamapper:"chain"`
	FeeRateBps uint64            `gluamapper:"fee_rate_bps"`
	Timeout    string            `gluamapper:"escrow_timeout"`
	Admins     []string          `gluamapper:"admins"`
	RPC        testRPC           `gluamapper:"client_rpc"`
	Levels     map[string]string `gluamapper:"levels"`
}

const testConfig = `
local M = {}

M.chain = "testing"
M.fee_rate_bps = 250
M.admins = { "eJuH8LVsuG3j3NiQfUTRnStyoBKzyNr7d1eq2DMZtaxQkbCBx6", "second" }

M.client_rpc = {
    maximum_connections = 7,
    listen = { "127.0.0.1:2130", "[::1]:2130" },
}

M.levels = {
    DEFAULT = "info",
    relay = "debug",
}

return M
`

func writeFile(t *testing.T, content string) (string, func()) {
	dir, err := ioutil.TempDir("", "carmarkd-configuration")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	fileName := filepath.Join(dir, "carmarkd.conf")
	if err := ioutil.WriteFile(fileName, []byte(content), 0600); nil != err {
		t.Fatalf("write error: %s", err)
	}
	return fileName, func() { os.RemoveAll(dir) }
}

func TestParseConfigurationFile(t *testing.T) {
	fileName, cleanup := writeFile(t, testConfig)
	defer cleanup()

	options := &testConfiguration{
		Chain:   "bitmark",
		Timeout: "168h",
	}
	err := configuration.ParseConfigurationFile(fileName, options)
	if !assert.Nil(t, err) {
		return
	}

	assert.Equal(t, "testing", options.Chain)
	assert.Equal(t, uint64(250), options.FeeRateBps)
	assert.Equal(t, "168h", options.Timeout, "default overwritten")
	assert.Equal(t, []string{"eJuH8LVsuG3j3NiQfUTRnStyoBKzyNr7d1eq2DMZtaxQkbCBx6", "second"}, options.Admins)
	assert.Equal(t, 7, options.RPC.MaximumConnections)
	assert.Equal(t, []string{"127.0.0.1:2130", "[::1]:2130"}, options.RPC.Listen)
	assert.Equal(t, "debug", options.Levels["relay"])
	assert.Equal(t, "info", options.Levels["DEFAULT"])
}

func TestParseConfigurationErrors(t *testing.T) {
	fileName, cleanup := writeFile(t, testConfig)
	defer cleanup()

	var options testConfiguration
	assert.Equal(t, fault.InvalidStructPointer, configuration.ParseConfigurationFile(fileName, options))
	assert.Equal(t, fault.InvalidStructPointer, configuration.ParseConfigurationFile(fileName, (*testConfiguration)(nil)))

	bad, cleanupBad := writeFile(t, "return {")
	defer cleanupBad()
	assert.NotNil(t, configuration.ParseConfigurationFile(bad, &options), "syntax error")

	noTable, cleanupNoTable := writeFile(t, "local x = 1")
	defer cleanupNoTable()
	assert.Equal(t, fault.MissingParameters, configuration.ParseConfigurationFile(noTable, &options))

	assert.NotNil(t, configuration.ParseConfigurationFile("/nonexistent/carmarkd.conf", &options))
}
