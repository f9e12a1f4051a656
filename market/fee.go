// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"math/bits"

	"github.com/bitmark-inc/carmarkd/record"
)

// SplitFee - floor(price × feeRateBps / 10000) and the remainder
//
// the product is computed in 128 bits so it cannot overflow;
// feeRateBps must not exceed record.MaxFeeRateBps
func SplitFee(price uint64, feeRateBps uint64) (fee uint64, sellerAmount uint64) {
	hi, lo := bits.Mul64(price, feeRateBps)
	fee, _ = bits.Div64(hi, lo, record.MaxFeeRateBps)
	return fee, price - fee
}
