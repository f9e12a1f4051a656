// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/zmqutil"
)

const (
	publicKey  = "PUBLIC:6a4c6d8a3b1f7c2e9d0a5b4c3d2e1f00112233445566778899aabbccddeeff00"
	privateKey = "PRIVATE:00ffeeddccbbaa99887766554433221100f1e2d3c4b5a0d9e2c7f1b3a8d6c4a6"
)

func TestParseKeys(t *testing.T) {
	pub, err := zmqutil.ReadPublicKey(publicKey + "\n")
	assert.Nil(t, err)
	assert.Equal(t, 32, len(pub))

	priv, err := zmqutil.ReadPrivateKey("  " + privateKey)
	assert.Nil(t, err)
	assert.Equal(t, 32, len(priv))

	_, err = zmqutil.ReadPublicKey(privateKey)
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "private as public")

	_, err = zmqutil.ReadPrivateKey(publicKey)
	assert.Equal(t, fault.InvalidPrivateKeyFile, err, "public as private")

	_, err = zmqutil.ReadPublicKey(strings.TrimSuffix(publicKey, "00"))
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "short key")

	_, err = zmqutil.ReadPrivateKey("PRIVATE:zz")
	assert.Equal(t, fault.InvalidPrivateKeyFile, err, "not hex")

	_, _, err = zmqutil.ParseKey("SECRET:00")
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "untagged")
}
