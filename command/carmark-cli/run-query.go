// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/carmarkd/command/carmark-cli/rpccalls"
)

func runAsset(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := digestFromString(c.String("id"))
	if nil != err {
		return err
	}
	externalId := c.String("external-id")
	if id.IsZero() && "" == externalId {
		return ErrIdOrExternalId
	}

	client, err := m.client()
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetAsset(id, externalId)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runOwned(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := accountFromString(c.String("owner"), c.String("key"), m.testnet)
	if nil != err {
		return err
	}

	start := c.Int("start")
	if start < 0 {
		return fmt.Errorf("invalid start: %d", start)
	}

	count := c.Int("count")
	if count <= 0 {
		return ErrInvalidCount
	}

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", owner)
		fmt.Fprintf(m.e, "start: %d\n", start)
		fmt.Fprintf(m.e, "count: %d\n", count)
	}

	client, err := m.client()
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetOwned(&rpccalls.OwnedData{
		Owner: owner,
		Start: start,
		Count: count,
	})
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runListing(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id := c.Uint64("id")
	assetId, err := digestFromString(c.String("asset"))
	if nil != err {
		return err
	}
	if 0 == id && assetId.IsZero() {
		return ErrIdOrAsset
	}

	client, err := m.client()
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetListing(id, assetId)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runEscrow(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id := c.Uint64("id")
	assetId, err := digestFromString(c.String("asset"))
	if nil != err {
		return err
	}
	if 0 == id && assetId.IsZero() {
		return ErrIdOrAsset
	}

	client, err := m.client()
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetDeal(id, assetId)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runRole(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	principal, err := accountFromString(c.String("principal"), c.String("key"), m.testnet)
	if nil != err {
		return err
	}

	client, err := m.client()
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.HasRole(principal, c.String("role"))
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := accountFromString(c.String("account"), c.String("key"), m.testnet)
	if nil != err {
		return err
	}

	client, err := m.client()
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetBalance(owner)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := m.client()
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetNodeInfo()
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}
