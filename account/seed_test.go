// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/fault"
)

type seedTestItem struct {
	seed   string
	addr   string
	priv   string
	isTest bool
}

var validSeedTestItems = []seedTestItem{
	{"5XEECqhR7QBkJezUJiUJBmHaSmffDfVN5atuLnQBHnvfxbsWHuBfQLw", "ajsDToCYSuK9rjSKGU6pwKGHahybu3DJ42DYbXRgHxS3Yc6CFC", "e6d85658b86242d45b52d9421736427ef22edda12c8790408c09ec3c9e356e755b4d99cc95cec16a3d489c94ba33d7fd6705c6cd3a6495c264e188b1985f4249", false},
	{"5XEECtzqJYokJbDkLzPMqNEF1Eo5qfGPqhbb4pGeuj2igeEMYraCcJ1", "fGcv38F4ucFwvwnepNYYDQt3eDjRaoVtLCdofMYGUENboXVQzx", "83fb4107766d5fd66d0648dcafbc6e77b24d8cced42940ae3a62bb98810e189bafeabdcd58645fa58c70fed58fea0ca95682ca4e20a4aae44319383865383b21", true},
}

var invalidBase58Seeds = []invalid{
	{"5XEECqhR7QBkJezUJiUJBmHaSmffDfVN5atuLnQBHnvfxbsWHuBfQ", fault.InvalidSeedLength},
	{"5XEECqhR7QBkJezUJiUJBmHaSmffDfVN5atuLnQBHnvfxbsWHuBfQkw", fault.ChecksumMismatch},
	{"5XBcj8Cz1Aj5yciJkivUrfYUbBk1LfgtfQ9oX8wsrA4QmmYw1miJSCE", fault.InvalidSeedHeader},
}

func TestPrivateKeyFromBase58Seed(t *testing.T) {
	for index, item := range validSeedTestItems {
		k, err := account.PrivateKeyFromBase58Seed(item.seed)
		if !assert.Nil(t, err, "%d: seed", index) {
			continue
		}
		assert.Equal(t, item.isTest, k.IsTesting(), "%d: network", index)
		assert.Equal(t, decodeHex(item.priv), k.PrivateKeyBytes(), "%d: private key", index)
		assert.Equal(t, item.addr, k.Account().String(), "%d: account", index)
	}
}

func TestPrivateKeyFromInvalidBase58Seed(t *testing.T) {
	for index, item := range invalidBase58Seeds {
		_, err := account.PrivateKeyFromBase58Seed(item.str)
		assert.Equal(t, item.err, err, "%d: %s", index, item.str)
	}
}

func TestNewBase58Seed(t *testing.T) {
	seed, err := account.NewBase58Seed(true)
	if nil != err {
		t.Fatalf("new seed error: %s", err)
	}

	k1, err := account.PrivateKeyFromBase58Seed(seed)
	assert.Nil(t, err)
	assert.True(t, k1.IsTesting())

	k2, err := account.PrivateKeyFromBase58Seed(seed)
	assert.Nil(t, err)
	assert.Equal(t, k1.PrivateKeyBytes(), k2.PrivateKeyBytes(), "seed is not deterministic")
}
