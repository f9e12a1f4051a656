// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"crypto/rand"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/carmarkd/fault"
)

// seed parameters
var (
	seedHeader = []byte{0x5a, 0xfe, 0x01}
	seedNonce  = [24]byte{}
	seedIndex  = [16]byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03, 0xe7,
	}
)

const (
	seedPrefixLength   = 1
	secretKeyLength    = 32
	seedChecksumLength = 4
	seedLength         = 40

	livePrefix = 0x00
	testPrefix = 0x01
)

// NewBase58Seed - create a fresh random seed in its text form
func NewBase58Seed(test bool) (string, error) {
	secretKey := make([]byte, secretKeyLength)
	if _, err := rand.Read(secretKey); nil != err {
		return "", err
	}

	prefix := byte(livePrefix)
	if test {
		prefix = testPrefix
	}

	seed := append(append([]byte{}, seedHeader...), prefix)
	seed = append(seed, secretKey...)
	checksum := sha3.Sum256(seed)
	return base58.Encode(append(seed, checksum[:seedChecksumLength]...)), nil
}

// PrivateKeyFromBase58Seed - convert a Base58 encoded seed string to a private key
func PrivateKeyFromBase58Seed(seedBase58Encoded string) (*PrivateKey, error) {
	seed, err := base58.Decode(seedBase58Encoded)
	if nil != err || 0 == len(seed) {
		return nil, fault.CannotDecodeSeed
	}
	if seedLength != len(seed) {
		return nil, fault.InvalidSeedLength
	}

	checksumStart := seedLength - seedChecksumLength
	digest := sha3.Sum256(seed[:checksumStart])
	if !bytes.Equal(digest[:seedChecksumLength], seed[checksumStart:]) {
		return nil, fault.ChecksumMismatch
	}

	if !bytes.Equal(seedHeader, seed[:len(seedHeader)]) {
		return nil, fault.InvalidSeedHeader
	}

	prefix := seed[len(seedHeader)]

	var secretKey [secretKeyLength]byte
	copy(secretKey[:], seed[len(seedHeader)+seedPrefixLength:checksumStart])

	// the encrypted index is the deterministic ed25519 seed
	encrypted := secretbox.Seal([]byte{}, seedIndex[:], &seedNonce, &secretKey)

	_, priv, err := ed25519.GenerateKey(bytes.NewBuffer(encrypted))
	if nil != err {
		return nil, err
	}

	return &PrivateKey{
		PrivateKeyInterface: &ED25519PrivateKey{
			Test:       testPrefix == prefix,
			PrivateKey: priv,
		},
	}, nil
}
