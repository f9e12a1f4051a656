// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/chain"
	"github.com/bitmark-inc/carmarkd/configuration"
	"github.com/bitmark-inc/carmarkd/escrow"
	"github.com/bitmark-inc/carmarkd/market"
	"github.com/bitmark-inc/carmarkd/publish"
	"github.com/bitmark-inc/carmarkd/record"
	"github.com/bitmark-inc/carmarkd/relay"
	"github.com/bitmark-inc/carmarkd/rpc/listeners"
	"github.com/bitmark-inc/carmarkd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultPublishPublicKeyFile  = "publish.public"
	defaultPublishPrivateKeyFile = "publish.private"
	defaultKeyFile               = "rpc.key"
	defaultCertificateFile       = "rpc.crt"

	defaultLevelDBDirectory = "data"
	defaultBitmarkDatabase  = chain.Bitmark + ".leveldb"
	defaultTestingDatabase  = chain.Testing + ".leveldb"
	defaultLocalDatabase    = chain.Local + ".leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "carmarkd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10
	defaultEventQueue = 1000
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// DatabaseType - location of the LevelDB store
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// BootstrapType - accounts granted roles on the first start
type BootstrapType struct {
	Admins    []string `gluamapper:"admins" json:"admins"`
	Verifiers []string `gluamapper:"verifiers" json:"verifiers"`
	Relayers  []string `gluamapper:"relayers" json:"relayers"`
}

// Configuration - the contents of the Lua configuration file
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Chain         string       `gluamapper:"chain" json:"chain"`
	Database      DatabaseType `gluamapper:"database" json:"database"`
	EventQueue    int          `gluamapper:"event_queue" json:"event_queue"`

	FeeRateBps           uint64        `gluamapper:"fee_rate_bps" json:"fee_rate_bps"`
	EscrowTimeout        string        `gluamapper:"escrow_timeout" json:"escrow_timeout"`
	MetaRequestMaxSkew   string        `gluamapper:"meta_request_max_skew" json:"meta_request_max_skew"`
	ListingDuration      string        `gluamapper:"listing_duration" json:"listing_duration"`
	ListingSweepInterval string        `gluamapper:"listing_sweep_interval" json:"listing_sweep_interval"`
	Treasury             string        `gluamapper:"treasury" json:"treasury"`
	Bootstrap            BootstrapType `gluamapper:"bootstrap" json:"bootstrap"`

	ClientRPC  listeners.RPCConfiguration   `gluamapper:"client_rpc" json:"client_rpc"`
	HttpsRPC   listeners.HTTPSConfiguration `gluamapper:"https_rpc" json:"https_rpc"`
	Publishing publish.Configuration        `gluamapper:"publishing" json:"publishing"`
	Logging    logger.Configuration         `gluamapper:"logging" json:"logging"`
}

// Settings - values derived from the configuration
type Settings struct {
	EscrowTimeout        time.Duration
	MetaRequestMaxSkew   time.Duration
	ListingDuration      time.Duration
	ListingSweepInterval time.Duration
	Treasury             *account.Account
	Admins               []*account.Account
	Verifiers            []*account.Account
	Relayers             []*account.Account
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Chain:         chain.Bitmark,
		EventQueue:    defaultEventQueue,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultBitmarkDatabase,
		},

		FeeRateBps:           market.DefaultFeeRateBps,
		EscrowTimeout:        escrow.DefaultTimeout.String(),
		MetaRequestMaxSkew:   relay.DefaultMaxSkew.String(),
		ListingDuration:      "0s",
		ListingSweepInterval: market.DefaultSweepInterval.String(),

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		// default: share config with normal RPC
		HttpsRPC: listeners.HTTPSConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Publishing: publish.Configuration{
			PublicKey:  defaultPublishPublicKeyFile,
			PrivateKey: defaultPublishPrivateKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: LoglevelMap{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	// if any test mode and the database file was not specified
	// switch to appropriate default.  Abort if then chain name is
	// not recognised.
	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("chain: %q is not supported", options.Chain)
	}

	// if database was not changed from default
	if options.Database.Name == defaultBitmarkDatabase {
		switch options.Chain {
		case chain.Bitmark:
			// already correct default
		case chain.Testing:
			options.Database.Name = defaultTestingDatabase
		case chain.Local:
			options.Database.Name = defaultLocalDatabase
		default:
			return nil, fmt.Errorf("chain: %s no default database setting", options.Chain)
		}
	}

	if options.FeeRateBps > record.MaxFeeRateBps {
		return nil, fmt.Errorf("fee_rate_bps: %d exceeds: %d", options.FeeRateBps, record.MaxFeeRateBps)
	}
	if options.EventQueue <= 0 {
		return nil, fmt.Errorf("event_queue: %d must be positive", options.EventQueue)
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.HttpsRPC.Certificate,
		&options.HttpsRPC.PrivateKey,
		&options.Publishing.PublicKey,
		&options.Publishing.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path separator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("files: %q is not plain name", *f[0])
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// convert the text items of the configuration
func (options *Configuration) settings() (*Settings, error) {
	s := &Settings{}

	durations := []struct {
		name  string
		text  string
		value *time.Duration
	}{
		{"escrow_timeout", options.EscrowTimeout, &s.EscrowTimeout},
		{"meta_request_max_skew", options.MetaRequestMaxSkew, &s.MetaRequestMaxSkew},
		{"listing_duration", options.ListingDuration, &s.ListingDuration},
		{"listing_sweep_interval", options.ListingSweepInterval, &s.ListingSweepInterval},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(d.text)
		if nil != err {
			return nil, fmt.Errorf("%s: %q: %s", d.name, d.text, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("%s: %q is negative", d.name, d.text)
		}
		*d.value = v
	}

	testing := chain.IsTesting(options.Chain)

	if "" != options.Treasury {
		a, err := parseAccount("treasury", options.Treasury, testing)
		if nil != err {
			return nil, err
		}
		s.Treasury = a
	}

	lists := []struct {
		name   string
		text   []string
		result *[]*account.Account
	}{
		{"admins", options.Bootstrap.Admins, &s.Admins},
		{"verifiers", options.Bootstrap.Verifiers, &s.Verifiers},
		{"relayers", options.Bootstrap.Relayers, &s.Relayers},
	}
	for _, l := range lists {
		for _, text := range l.text {
			a, err := parseAccount(l.name, text, testing)
			if nil != err {
				return nil, err
			}
			*l.result = append(*l.result, a)
		}
	}

	return s, nil
}

func parseAccount(name string, text string, testing bool) (*account.Account, error) {
	a, err := account.AccountFromBase58(strings.TrimSpace(text))
	if nil != err {
		return nil, fmt.Errorf("%s: %q: %s", name, text, err)
	}
	if a.IsTesting() != testing {
		return nil, fmt.Errorf("%s: %q: wrong network for account", name, text)
	}
	return a, nil
}
