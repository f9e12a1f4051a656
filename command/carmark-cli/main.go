// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/carmarkd/chain"
	"github.com/bitmark-inc/carmarkd/command/carmark-cli/rpccalls"
)

type metadata struct {
	network string
	connect string
	testnet bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// connect to the node given by the global flags
func (m *metadata) client() (*rpccalls.Client, error) {
	if "" == m.connect {
		return nil, ErrConnectRequired
	}
	if m.verbose {
		fmt.Fprintf(m.e, "connect: %s\n", m.connect)
	}
	return rpccalls.NewClient(m.testnet, m.connect, m.verbose, m.e)
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

const defaultExpiry = 10 * time.Minute

func main() {

	app := cli.NewApp()
	app.Name = "carmark-cli"
	app.Usage = "submit meta requests to carmarkd and query its state"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	keyFlag := cli.StringFlag{
		Name:   "key, k",
		Value:  "",
		Usage:  " signing seed or private `KEY`",
		EnvVar: "CARMARK_KEY",
	}

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "network, n",
			Value: chain.Bitmark,
			Usage: " connect to carmarkd `NETWORK` [bitmark|testing|local]",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "",
			Usage:  " carmarkd host/IP and port, `HOST:PORT`",
			EnvVar: "CARMARK_CONNECT",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate a new seed and show its account",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runGenerate,
		},
		{
			Name:      "account",
			Usage:     "display the account of a key",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{keyFlag},
			Action:    runAccount,
		},
		{
			Name:      "sign",
			Usage:     "sign a meta request offline and print it",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				keyFlag,
				cli.StringFlag{
					Name:  "operation, o",
					Value: "",
					Usage: "*operation `NAME` e.g. mint, createListing, fundEscrow",
				},
				cli.StringFlag{
					Name:  "params, p",
					Value: "{}",
					Usage: " operation parameters as `JSON`",
				},
				cli.Uint64Flag{
					Name:  "nonce",
					Value: 0,
					Usage: "*request `NONCE`, must exceed the last accepted",
				},
				cli.DurationFlag{
					Name:  "expiry, x",
					Value: defaultExpiry,
					Usage: " request valid for `DURATION`",
				},
			},
			Action: runSign,
		},
		{
			Name:      "submit",
			Usage:     "co-sign a meta request as relayer and submit it",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				keyFlag,
				cli.StringFlag{
					Name:   "relayer-key, r",
					Value:  "",
					Usage:  "*relayer seed or private `KEY`",
					EnvVar: "CARMARK_RELAYER_KEY",
				},
				cli.StringFlag{
					Name:  "request, f",
					Value: "",
					Usage: "+signed request `FILE` from sign, - for stdin",
				},
				cli.StringFlag{
					Name:  "operation, o",
					Value: "",
					Usage: "+operation `NAME` signed with the key",
				},
				cli.StringFlag{
					Name:  "params, p",
					Value: "{}",
					Usage: " operation parameters as `JSON`",
				},
				cli.Uint64Flag{
					Name:  "nonce",
					Value: 0,
					Usage: " request `NONCE` [default: next from carmarkd]",
				},
				cli.DurationFlag{
					Name:  "expiry, x",
					Value: defaultExpiry,
					Usage: " request valid for `DURATION`",
				},
			},
			Action: runSubmit,
		},
		{
			Name:      "nonce",
			Usage:     "display the last accepted nonce of a signer",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				keyFlag,
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "+signer `ACCOUNT` [default: account of key]",
				},
			},
			Action: runNonce,
		},
		{
			Name:      "asset",
			Usage:     "display an asset",
			ArgsUsage: "\n   (+ = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "+asset `ID`",
				},
				cli.StringFlag{
					Name:  "external-id, e",
					Value: "",
					Usage: "+vehicle `EXTERNAL_ID`",
				},
			},
			Action: runAsset,
		},
		{
			Name:      "owned",
			Usage:     "list assets held by an account",
			ArgsUsage: "\n   (+ = select one)",
			Flags: []cli.Flag{
				keyFlag,
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "+owner `ACCOUNT` [default: account of key]",
				},
				cli.IntFlag{
					Name:  "start, s",
					Value: 0,
					Usage: " starting from position `START`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " maximum records to output `COUNT`",
				},
			},
			Action: runOwned,
		},
		{
			Name:      "listing",
			Usage:     "display a listing",
			ArgsUsage: "\n   (+ = select one)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "id, i",
					Value: 0,
					Usage: "+listing `ID`",
				},
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "+active listing of asset `ID`",
				},
			},
			Action: runListing,
		},
		{
			Name:      "escrow",
			Usage:     "display an escrow deal",
			ArgsUsage: "\n   (+ = select one)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "id, i",
					Value: 0,
					Usage: "+deal `ID`",
				},
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "+open deal of asset `ID`",
				},
			},
			Action: runEscrow,
		},
		{
			Name:      "role",
			Usage:     "display the roles of a principal",
			ArgsUsage: "\n   (+ = select one)",
			Flags: []cli.Flag{
				keyFlag,
				cli.StringFlag{
					Name:  "principal, p",
					Value: "",
					Usage: "+principal `ACCOUNT` [default: account of key]",
				},
				cli.StringFlag{
					Name:  "role, r",
					Value: "",
					Usage: " check a single `ROLE` [admin|verifier|relayer]",
				},
			},
			Action: runRole,
		},
		{
			Name:      "balance",
			Usage:     "display the ledger balance of an account",
			ArgsUsage: "\n   (+ = select one)",
			Flags: []cli.Flag{
				keyFlag,
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "+`ACCOUNT` [default: account of key]",
				},
			},
			Action: runBalance,
		},
		{
			Name:   "info",
			Usage:  "display carmarkd status",
			Action: runInfo,
		},
		{
			Name:  "version",
			Usage: "display carmark-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {

		network, err := networkName(c.GlobalString("network"))
		if nil != err {
			return err
		}

		c.App.Metadata["config"] = &metadata{
			network: network,
			connect: c.GlobalString("connect"),
			testnet: chain.IsTesting(network),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		exitwithstatus.Exit(1)
	}
}
