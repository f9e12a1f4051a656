// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/rpc/accounts"
)

// HasRole - check a role, or just list roles when role is empty
func (client *Client) HasRole(principal *account.Account, role string) (*accounts.HasReply, error) {

	hasArgs := accounts.HasArguments{
		Principal: principal,
		Role:      role,
	}

	client.printJson("Role Request", hasArgs)

	reply := &accounts.HasReply{}
	err := client.client.Call("Role.Has", hasArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Role Reply", reply)

	return reply, nil
}

// GetBalance - ledger credit of an account
func (client *Client) GetBalance(owner *account.Account) (*accounts.GetReply, error) {

	getArgs := accounts.GetArguments{
		Account: owner,
	}

	client.printJson("Balance Request", getArgs)

	reply := &accounts.GetReply{}
	err := client.client.Call("Balance.Get", getArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Balance Reply", reply)

	return reply, nil
}
