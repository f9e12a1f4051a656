// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/asset"
	"github.com/bitmark-inc/carmarkd/background"
	"github.com/bitmark-inc/carmarkd/chain"
	"github.com/bitmark-inc/carmarkd/escrow"
	"github.com/bitmark-inc/carmarkd/ledger"
	"github.com/bitmark-inc/carmarkd/market"
	"github.com/bitmark-inc/carmarkd/messagebus"
	"github.com/bitmark-inc/carmarkd/publish"
	"github.com/bitmark-inc/carmarkd/relay"
	"github.com/bitmark-inc/carmarkd/roles"
	"github.com/bitmark-inc/carmarkd/rpc"
	"github.com/bitmark-inc/carmarkd/rpc/server"
	"github.com/bitmark-inc/carmarkd/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	settings, err := theConfiguration.settings()
	if nil != err {
		exitwithstatus.Message("%s: configuration error: %s", program, err)
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if nil != err {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// general info
	testing := chain.IsTesting(theConfiguration.Chain)
	log.Infof("chain: %s  test accounts: %v", theConfiguration.Chain, testing)
	log.Infof("database: %q", theConfiguration.Database.Name)

	// connection info
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "HttpsRPC", theConfiguration.HttpsRPC)
	log.Debugf("%s = %#v", "Publishing", theConfiguration.Publishing)

	// start the data storage
	log.Info("initialise storage")
	store, err := storage.Open(theConfiguration.Database.Name, false)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer store.Close()

	// committed events flow through this queue to the publisher
	bus := messagebus.New(theConfiguration.EventQueue)

	custody := account.NewCustody(testing, settings.Treasury)
	log.Infof("custody: marketplace: %s  escrow: %s  treasury: %s", custody.Marketplace, custody.Escrow, custody.Treasury)

	roleRegistry := roles.New(store, bus)
	assetRegistry := asset.New(store, roleRegistry, bus)
	settlement := ledger.New(store)

	escrowEngine := escrow.New(store, assetRegistry, roleRegistry, settlement, custody, bus, escrow.Config{
		Timeout: settings.EscrowTimeout,
	})

	marketplace, err := market.New(store, assetRegistry, escrowEngine, settlement, custody, bus, market.Config{
		FeeRateBps:      theConfiguration.FeeRateBps,
		ListingDuration: settings.ListingDuration,
	})
	if nil != err {
		log.Criticalf("market initialise error: %s", err)
		exitwithstatus.Message("market initialise error: %s", err)
	}

	relayer, err := relay.New(store, roleRegistry, bus, relay.Config{
		Chain:   theConfiguration.Chain,
		MaxSkew: settings.MetaRequestMaxSkew,
	})
	if nil != err {
		log.Criticalf("relay initialise error: %s", err)
		exitwithstatus.Message("relay initialise error: %s", err)
	}
	relayer.Register(roleRegistry, assetRegistry, marketplace, escrowEngine)

	// start up the publishing background processes
	// before any roles are seeded so their events are seen
	err = publish.Initialise(&theConfiguration.Publishing, bus)
	if nil != err {
		log.Criticalf("publish initialise error: %s", err)
		exitwithstatus.Message("publish initialise error: %s", err)
	}
	defer publish.Finalise()

	seeded, err := roleRegistry.Bootstrap(settings.Admins, settings.Verifiers, settings.Relayers)
	if nil != err {
		log.Criticalf("role bootstrap error: %s", err)
		exitwithstatus.Message("role bootstrap error: %s  (at least one admin is required on first start)", err)
	}
	if !seeded {
		log.Info("roles already bootstrapped")
	}

	// listing expiry and fee rate reload
	processes := background.Processes{}
	if 0 != settings.ListingDuration {
		processes = append(processes, market.NewSweeper(marketplace, settings.ListingSweepInterval))
	}
	watcher, err := newConfigWatcher(configurationFile, marketplace, readFeeRate)
	if nil != err {
		log.Warnf("configuration watcher disabled: %s", err)
	} else {
		processes = append(processes, watcher)
	}
	backgroundProcesses := background.Start(processes, nil)
	defer backgroundProcesses.Stop()

	// start up the rpc background processes
	err = rpc.Initialise(&theConfiguration.ClientRPC, &theConfiguration.HttpsRPC, version, &server.Services{
		Chain:     theConfiguration.Chain,
		Relay:     relayer,
		Assets:    assetRegistry,
		Market:    marketplace,
		Escrow:    escrowEngine,
		Roles:     roleRegistry,
		Ledger:    settlement,
		Events:    bus,
		Published: publish.Published,
	})
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}
