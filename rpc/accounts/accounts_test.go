// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package accounts_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/record"
	"github.com/bitmark-inc/carmarkd/rpc/accounts"
	"github.com/bitmark-inc/carmarkd/rpc/fixtures"
	"github.com/bitmark-inc/carmarkd/rpc/mocks"
)

func principal(t *testing.T) *account.Account {
	key, err := account.NewPrivateKey(true)
	if nil != err {
		t.Fatalf("key error: %s", err)
	}
	return key.Account()
}

func TestRoleHas(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	c := mocks.NewMockRoleChecker(ctl)
	r := accounts.NewRole(logger.New(fixtures.LogCategory), c)

	p := principal(t)
	held := []record.Role{record.Verifier}

	c.EXPECT().Roles(p).Return(held).Times(2)
	c.EXPECT().HasRole(p, record.Verifier).Return(true).Times(1)

	var reply accounts.HasReply
	err := r.Has(&accounts.HasArguments{Principal: p, Role: "verifier"}, &reply)
	assert.Nil(t, err, "wrong Has")
	assert.True(t, reply.Has, "role not held")
	assert.Equal(t, held, reply.Roles, "wrong roles")

	reply = accounts.HasReply{}
	err = r.Has(&accounts.HasArguments{Principal: p}, &reply)
	assert.Nil(t, err, "wrong Has without role")
	assert.False(t, reply.Has, "has without a role")
	assert.Equal(t, held, reply.Roles, "wrong roles")
}

func TestRoleHasErrors(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	c := mocks.NewMockRoleChecker(ctl)
	r := accounts.NewRole(logger.New(fixtures.LogCategory), c)

	p := principal(t)
	c.EXPECT().Roles(p).Return(nil).Times(1)

	var reply accounts.HasReply
	err := r.Has(&accounts.HasArguments{Principal: p, Role: "driver"}, &reply)
	assert.Equal(t, fault.InvalidRole, err, "wrong error")
	assert.Equal(t, []record.Role{}, reply.Roles, "wrong empty roles")

	err = r.Has(&accounts.HasArguments{Role: "admin"}, &reply)
	assert.Equal(t, fault.MissingParameters, err, "wrong error without principal")
}

func TestBalanceGet(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	l := mocks.NewMockBalanceReader(ctl)
	b := accounts.NewBalance(logger.New(fixtures.LogCategory), l)

	a := principal(t)
	l.EXPECT().Balance(a).Return(uint64(980)).Times(1)

	var reply accounts.GetReply
	err := b.Get(&accounts.GetArguments{Account: a}, &reply)
	assert.Nil(t, err, "wrong Get")
	assert.Equal(t, uint64(980), reply.Balance, "wrong balance")

	err = b.Get(&accounts.GetArguments{}, &reply)
	assert.Equal(t, fault.MissingParameters, err, "wrong error")
}
