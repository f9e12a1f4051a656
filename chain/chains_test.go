// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/carmarkd/chain"
)

func TestValid(t *testing.T) {
	for _, name := range []string{chain.Bitmark, chain.Testing, chain.Local} {
		assert.True(t, chain.Valid(name), name)
	}
	assert.False(t, chain.Valid("livenet"), "unknown chain accepted")
	assert.False(t, chain.Valid(""), "empty chain accepted")
}

func TestIsTesting(t *testing.T) {
	assert.False(t, chain.IsTesting(chain.Bitmark))
	assert.True(t, chain.IsTesting(chain.Testing))
	assert.True(t, chain.IsTesting(chain.Local))
}
