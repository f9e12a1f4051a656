// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package accounts

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/record"
	"github.com/bitmark-inc/carmarkd/rpc/ratelimit"
)

const (
	rateLimitRole = 200
	rateBurstRole = 100
)

// RoleChecker - read access to the role registry
type RoleChecker interface {
	HasRole(*account.Account, record.Role) bool
	Roles(*account.Account) []record.Role
}

// Role - type for the RPC
type Role struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Registry RoleChecker
}

// NewRole - create the role RPC service
func NewRole(log *logger.L, registry RoleChecker) *Role {
	return &Role{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitRole, rateBurstRole),
		Registry: registry,
	}
}

// HasArguments - principal and an optional role to test
type HasArguments struct {
	Principal *account.Account `json:"principal"`
	Role      string           `json:"role"`
}

// HasReply - whether the role is held plus every role held
type HasReply struct {
	Has   bool          `json:"has"`
	Roles []record.Role `json:"roles"`
}

// Has - query the roles of a principal
func (r *Role) Has(arguments *HasArguments, reply *HasReply) error {

	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Principal || nil == arguments.Principal.AccountInterface {
		return fault.MissingParameters
	}

	reply.Roles = r.Registry.Roles(arguments.Principal)
	if nil == reply.Roles {
		reply.Roles = []record.Role{}
	}

	if "" == arguments.Role {
		return nil
	}
	role, err := record.RoleFromString(arguments.Role)
	if nil != err {
		return err
	}
	reply.Has = r.Registry.HasRole(arguments.Principal, role)
	return nil
}
