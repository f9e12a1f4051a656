// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

type nonceReply struct {
	Last uint64 `json:"last,string"`
	Next uint64 `json:"next,string"`
}

func runNonce(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	signer, err := accountFromString(c.String("account"), c.String("key"), m.testnet)
	if nil != err {
		return err
	}

	client, err := m.client()
	if nil != err {
		return err
	}
	defer client.Close()

	last, err := client.GetNonce(signer)
	if nil != err {
		return err
	}

	return printJson(m.w, nonceReply{
		Last: last,
		Next: last + 1,
	})
}
