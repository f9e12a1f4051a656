// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/carmarkd/account"
)

type generateReply struct {
	Seed       string           `json:"seed"`
	PrivateKey string           `json:"privateKey"`
	Account    *account.Account `json:"account"`
}

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	seed, err := account.NewBase58Seed(m.testnet)
	if nil != err {
		return err
	}

	privateKey, err := account.PrivateKeyFromBase58Seed(seed)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "network: %s\n", m.network)
	}

	return printJson(m.w, generateReply{
		Seed:       seed,
		PrivateKey: privateKey.String(),
		Account:    privateKey.Account(),
	})
}

func runAccount(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	privateKey, err := privateKeyFromString(c.String("key"), m.testnet)
	if nil != err {
		return err
	}

	return printJson(m.w, map[string]*account.Account{
		"account": privateKey.Account(),
	})
}
