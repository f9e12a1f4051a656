// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/carmarkd/fault"
)

// ListingStatus - lifecycle of a listing
type ListingStatus uint8

// listing states
const (
	ListingActive ListingStatus = iota + 1
	ListingSold
	ListingCancelled
	ListingExpired
)

var listingNames = map[ListingStatus]string{
	ListingActive:    "Active",
	ListingSold:      "Sold",
	ListingCancelled: "Cancelled",
	ListingExpired:   "Expired",
}

// IsTerminal - no further transitions
func (s ListingStatus) IsTerminal() bool {
	return ListingActive != s
}

func (s ListingStatus) String() string {
	if name, ok := listingNames[s]; ok {
		return name
	}
	return "Invalid"
}

// MarshalText - status name for JSON
func (s ListingStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText - status from its name
func (s *ListingStatus) UnmarshalText(text []byte) error {
	for k, v := range listingNames {
		if v == string(text) {
			*s = k
			return nil
		}
	}
	return fault.InvalidItem
}

// DealState - escrow state machine
//
//	Created  -> Funded | Cancelled
//	Funded   -> Released | Cancelled | Disputed
//	Disputed -> Released | Cancelled
type DealState uint8

// deal states
const (
	DealCreated DealState = iota + 1
	DealFunded
	DealReleased
	DealCancelled
	DealDisputed
)

var dealNames = map[DealState]string{
	DealCreated:   "Created",
	DealFunded:    "Funded",
	DealReleased:  "Released",
	DealCancelled: "Cancelled",
	DealDisputed:  "Disputed",
}

// IsTerminal - no further transitions
func (s DealState) IsTerminal() bool {
	return DealReleased == s || DealCancelled == s
}

func (s DealState) String() string {
	if name, ok := dealNames[s]; ok {
		return name
	}
	return "Invalid"
}

// MarshalText - state name for JSON
func (s DealState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText - state from its name
func (s *DealState) UnmarshalText(text []byte) error {
	for k, v := range dealNames {
		if v == string(text) {
			*s = k
			return nil
		}
	}
	return fault.InvalidItem
}

// Role - capability held by a principal
type Role uint8

// roles
const (
	Admin Role = iota + 1
	Verifier
	Relayer
)

var roleNames = map[Role]string{
	Admin:    "admin",
	Verifier: "verifier",
	Relayer:  "relayer",
}

// Valid - a known role
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "invalid"
}

// RoleFromString - parse a role name
func RoleFromString(s string) (Role, error) {
	for k, v := range roleNames {
		if v == s {
			return k, nil
		}
	}
	return 0, fault.InvalidRole
}

// MarshalText - role name for JSON
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText - role from its name
func (r *Role) UnmarshalText(text []byte) error {
	role, err := RoleFromString(string(text))
	if nil != err {
		return err
	}
	*r = role
	return nil
}
