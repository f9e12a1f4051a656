// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/digest"
	"github.com/bitmark-inc/carmarkd/rpc/assets"
)

// GetAsset - fetch an asset by id or by its external id
func (client *Client) GetAsset(id digest.Digest, externalId string) (*assets.GetReply, error) {

	getArgs := assets.GetArguments{
		Id:         id,
		ExternalId: externalId,
	}

	client.printJson("Asset Request", getArgs)

	reply := &assets.GetReply{}
	err := client.client.Call("Asset.Get", getArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Asset Reply", reply)

	return reply, nil
}

// OwnedData - data for an ownership request
type OwnedData struct {
	Owner *account.Account
	Start int
	Count int
}

// GetOwned - obtain a page of the assets held by an account
func (client *Client) GetOwned(ownedConfig *OwnedData) (*assets.OwnedReply, error) {

	ownedArgs := assets.OwnedArguments{
		Owner: ownedConfig.Owner,
		Start: ownedConfig.Start,
		Count: ownedConfig.Count,
	}

	client.printJson("Owned Request", ownedArgs)

	reply := &assets.OwnedReply{}
	err := client.client.Call("Asset.Owned", ownedArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Owned Reply", reply)

	return reply, nil
}
