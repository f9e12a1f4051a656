// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strings"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/chain"
	"github.com/bitmark-inc/carmarkd/digest"
)

// network names and their aliases
func networkName(network string) (string, error) {
	switch strings.ToLower(network) {
	case "bitmark", "live":
		return chain.Bitmark, nil
	case "testing", "test":
		return chain.Testing, nil
	case "local", "regression":
		return chain.Local, nil
	default:
		return "", ErrInvalidNetwork
	}
}

// a key may be given as a base58 seed or as a base58 private key
func privateKeyFromString(s string, testnet bool) (*account.PrivateKey, error) {
	s = strings.TrimSpace(s)
	if "" == s {
		return nil, ErrKeyRequired
	}

	key, err := account.PrivateKeyFromBase58Seed(s)
	if nil != err {
		key, err = account.PrivateKeyFromBase58(s)
		if nil != err {
			return nil, ErrUnknownKeyFormat
		}
	}
	if key.IsTesting() != testnet {
		return nil, ErrNetworkMismatch
	}
	return key, nil
}

// an account flag, falling back to the account of the key flag
func accountFromString(s string, key string, testnet bool) (*account.Account, error) {
	s = strings.TrimSpace(s)
	if "" == s {
		privateKey, err := privateKeyFromString(key, testnet)
		if nil != err {
			return nil, err
		}
		return privateKey.Account(), nil
	}

	a, err := account.AccountFromBase58(s)
	if nil != err {
		return nil, err
	}
	if a.IsTesting() != testnet {
		return nil, ErrNetworkMismatch
	}
	return a, nil
}

// empty string gives the zero digest
func digestFromString(s string) (digest.Digest, error) {
	var d digest.Digest
	if "" == s {
		return d, nil
	}
	err := d.UnmarshalText([]byte(s))
	return d, err
}
