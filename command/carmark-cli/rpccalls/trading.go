// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/carmarkd/digest"
	"github.com/bitmark-inc/carmarkd/rpc/trading"
)

// GetListing - by listing id, or the active listing of an asset when id is zero
func (client *Client) GetListing(id uint64, assetId digest.Digest) (*trading.ListingGetReply, error) {

	getArgs := trading.ListingGetArguments{
		Id:      id,
		AssetId: assetId,
	}

	client.printJson("Listing Request", getArgs)

	reply := &trading.ListingGetReply{}
	err := client.client.Call("Listing.Get", getArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Listing Reply", reply)

	return reply, nil
}

// GetDeal - by deal id, or the open deal of an asset when id is zero
func (client *Client) GetDeal(id uint64, assetId digest.Digest) (*trading.EscrowGetReply, error) {

	getArgs := trading.EscrowGetArguments{
		Id:      id,
		AssetId: assetId,
	}

	client.printJson("Escrow Request", getArgs)

	reply := &trading.EscrowGetReply{}
	err := client.client.Call("Escrow.Get", getArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Escrow Reply", reply)

	return reply, nil
}
