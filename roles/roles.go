// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package roles - capability roles held by principals
package roles

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/messagebus"
	"github.com/bitmark-inc/carmarkd/record"
	"github.com/bitmark-inc/carmarkd/storage"
)

// event names
const (
	EventGranted = "RoleGranted"
	EventRevoked = "RoleRevoked"
)

// counter of principals holding Admin
const adminCountKey = "admins"

var present = []byte{0x01}

// Event - body of role events
type Event struct {
	Actor     *account.Account `json:"actor,omitempty"`
	Principal *account.Account `json:"principal"`
	Role      record.Role      `json:"role"`
}

// Registry - principal to role mapping
type Registry struct {
	log   *logger.L
	store *storage.Store
	bus   *messagebus.Queue
}

// New - create a registry
func New(store *storage.Store, bus *messagebus.Queue) *Registry {
	return &Registry{
		log:   logger.New("roles"),
		store: store,
		bus:   bus,
	}
}

func roleKey(principal *account.Account, role record.Role) []byte {
	return append(principal.Bytes(), byte(role))
}

// HasRole - committed check
func (r *Registry) HasRole(principal *account.Account, role record.Role) bool {
	if nil == principal || nil == principal.AccountInterface {
		return false
	}
	return r.store.Pool.Roles.Has(roleKey(principal, role))
}

// HasRoleTx - check including the transaction's writes
func (r *Registry) HasRoleTx(trx storage.Transaction, principal *account.Account, role record.Role) bool {
	if nil == principal || nil == principal.AccountInterface {
		return false
	}
	return trx.Has(r.store.Pool.Roles, roleKey(principal, role))
}

// Roles - every role a principal holds
func (r *Registry) Roles(principal *account.Account) []record.Role {
	roles := []record.Role{}
	for _, role := range []record.Role{record.Admin, record.Verifier, record.Relayer} {
		if r.HasRole(principal, role) {
			roles = append(roles, role)
		}
	}
	return roles
}

// Grant - Admin gives a role to a principal
func (r *Registry) Grant(actor *account.Account, principal *account.Account, role record.Role) error {
	return r.store.Update(func(trx storage.Transaction) error {
		return r.GrantTx(trx, actor, principal, role)
	})
}

// GrantTx - Grant inside an existing transaction
func (r *Registry) GrantTx(trx storage.Transaction, actor *account.Account, principal *account.Account, role record.Role) error {
	if !role.Valid() {
		return fault.InvalidRole
	}
	if nil == principal || nil == principal.AccountInterface {
		return fault.MissingParameters
	}
	if !r.HasRoleTx(trx, actor, record.Admin) {
		return fault.AccessDenied
	}
	if r.HasRoleTx(trx, principal, role) {
		return fault.RoleAlreadyGranted
	}

	r.put(trx, principal, role)

	r.log.Infof("grant: %s  to: %s  by: %s", role, principal, actor)
	r.emit(trx, EventGranted, actor, principal, role)
	return nil
}

// Revoke - Admin removes a role from a principal
func (r *Registry) Revoke(actor *account.Account, principal *account.Account, role record.Role) error {
	return r.store.Update(func(trx storage.Transaction) error {
		return r.RevokeTx(trx, actor, principal, role)
	})
}

// RevokeTx - Revoke inside an existing transaction
//
// the last Admin cannot remove their own Admin role
func (r *Registry) RevokeTx(trx storage.Transaction, actor *account.Account, principal *account.Account, role record.Role) error {
	if !role.Valid() {
		return fault.InvalidRole
	}
	if nil == principal || nil == principal.AccountInterface {
		return fault.MissingParameters
	}
	if !r.HasRoleTx(trx, actor, record.Admin) {
		return fault.AccessDenied
	}
	if !r.HasRoleTx(trx, principal, role) {
		return fault.RoleNotGranted
	}

	if record.Admin == role {
		admins, _ := trx.GetN(r.store.Pool.Counters, []byte(adminCountKey))
		if admins <= 1 {
			r.log.Warnf("refused revoke of last admin: %s", principal)
			return fault.InvariantViolation
		}
		trx.PutN(r.store.Pool.Counters, []byte(adminCountKey), admins-1)
	}
	trx.Delete(r.store.Pool.Roles, roleKey(principal, role))

	r.log.Infof("revoke: %s  from: %s  by: %s", role, principal, actor)
	r.emit(trx, EventRevoked, actor, principal, role)
	return nil
}

// Bootstrap - seed the initial roles on first start
//
// returns false without changes once any Admin exists
func (r *Registry) Bootstrap(admins []*account.Account, verifiers []*account.Account, relayers []*account.Account) (bool, error) {
	seeded := false
	err := r.store.Update(func(trx storage.Transaction) error {
		if n, _ := trx.GetN(r.store.Pool.Counters, []byte(adminCountKey)); 0 != n {
			return nil
		}
		if 0 == len(admins) {
			return fault.MissingParameters
		}

		seeds := []struct {
			role       record.Role
			principals []*account.Account
		}{
			{record.Admin, admins},
			{record.Verifier, verifiers},
			{record.Relayer, relayers},
		}
		for _, seed := range seeds {
			role := seed.role
			for _, principal := range seed.principals {
				if nil == principal || r.HasRoleTx(trx, principal, role) {
					continue
				}
				r.put(trx, principal, role)
				r.emit(trx, EventGranted, nil, principal, role)
			}
		}
		seeded = true
		return nil
	})
	if nil != err {
		return false, err
	}
	if seeded {
		r.log.Infof("bootstrap: admins: %d  verifiers: %d  relayers: %d", len(admins), len(verifiers), len(relayers))
	}
	return seeded, nil
}

// Apply - relay handler for GrantRole and RevokeRole
func (r *Registry) Apply(trx storage.Transaction, actor *account.Account, op record.Operation) error {
	switch o := op.(type) {
	case *record.GrantRole:
		return r.GrantTx(trx, actor, o.Principal, o.Role)
	case *record.RevokeRole:
		return r.RevokeTx(trx, actor, o.Principal, o.Role)
	default:
		return fault.InvalidOperation
	}
}

// Tags - operations handled by Apply
func (r *Registry) Tags() []record.TagType {
	return []record.TagType{record.GrantRoleTag, record.RevokeRoleTag}
}

func (r *Registry) put(trx storage.Transaction, principal *account.Account, role record.Role) {
	if record.Admin == role {
		admins, _ := trx.GetN(r.store.Pool.Counters, []byte(adminCountKey))
		trx.PutN(r.store.Pool.Counters, []byte(adminCountKey), admins+1)
	}
	trx.Put(r.store.Pool.Roles, roleKey(principal, role), present)
}

func (r *Registry) emit(trx storage.Transaction, command string, actor *account.Account, principal *account.Account, role record.Role) {
	e := Event{
		Actor:     actor,
		Principal: principal,
		Role:      role,
	}
	trx.OnCommit(func() {
		r.bus.SendJSON(command, e)
	})
}
