// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/account"
	"github.com/bitmark-inc/carmarkd/digest"
	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/messagebus"
	"github.com/bitmark-inc/carmarkd/record"
	"github.com/bitmark-inc/carmarkd/roles"
	"github.com/bitmark-inc/carmarkd/storage"
)

// event names
const (
	EventMinted      = "AssetMinted"
	EventVerified    = "AssetVerified"
	EventTransferred = "AssetTransferred"
)

var present = []byte{0x01}

// TransferEvent - body of AssetTransferred
type TransferEvent struct {
	AssetId digest.Digest    `json:"assetId"`
	From    *account.Account `json:"from"`
	To      *account.Account `json:"to"`
}

// VerifiedEvent - body of AssetVerified
type VerifiedEvent struct {
	AssetId  digest.Digest    `json:"assetId"`
	Verifier *account.Account `json:"verifier"`
	Verified bool             `json:"verified"`
}

// Registry - the asset registry
type Registry struct {
	log   *logger.L
	store *storage.Store
	roles *roles.Registry
	bus   *messagebus.Queue
}

// New - create a registry
func New(store *storage.Store, roleRegistry *roles.Registry, bus *messagebus.Queue) *Registry {
	return &Registry{
		log:   logger.New("asset"),
		store: store,
		roles: roleRegistry,
		bus:   bus,
	}
}

// Mint - create an asset for an external identifier
func (r *Registry) Mint(owner *account.Account, externalId string, metadataRef string) (digest.Digest, error) {
	var id digest.Digest
	err := r.store.Update(func(trx storage.Transaction) error {
		var err error
		id, err = r.MintTx(trx, owner, externalId, metadataRef)
		return err
	})
	return id, err
}

// MintTx - Mint inside an existing transaction
func (r *Registry) MintTx(trx storage.Transaction, owner *account.Account, externalId string, metadataRef string) (digest.Digest, error) {
	if nil == owner || nil == owner.AccountInterface {
		return digest.Digest{}, fault.MissingParameters
	}
	if "" == strings.TrimSpace(externalId) {
		return digest.Digest{}, fault.InvalidExternalId
	}
	if len(externalId) > record.MaxExternalIdLength {
		return digest.Digest{}, fault.ExternalIdTooLong
	}
	if len(metadataRef) > record.MaxMetadataRefLength {
		return digest.Digest{}, fault.MetadataTooLong
	}

	id := record.AssetId(externalId)
	if trx.Has(r.store.Pool.Assets, id[:]) {
		return digest.Digest{}, fault.DuplicateExternalId
	}

	a := &record.Asset{
		Id:          id,
		ExternalId:  externalId,
		Owner:       owner,
		Verified:    false,
		MetadataRef: metadataRef,
	}
	r.put(trx, a)
	trx.Put(r.store.Pool.OwnedAssets, ownedKey(owner, id), present)

	r.log.Infof("mint: %s  external id: %q  owner: %s", id, externalId, owner)
	trx.OnCommit(func() {
		r.bus.SendJSON(EventMinted, a)
	})
	return id, nil
}

// SetVerified - Verifier records the outcome of vehicle verification
func (r *Registry) SetVerified(actor *account.Account, id digest.Digest, verified bool) error {
	return r.store.Update(func(trx storage.Transaction) error {
		return r.SetVerifiedTx(trx, actor, id, verified)
	})
}

// SetVerifiedTx - SetVerified inside an existing transaction
func (r *Registry) SetVerifiedTx(trx storage.Transaction, actor *account.Account, id digest.Digest, verified bool) error {
	if !r.roles.HasRoleTx(trx, actor, record.Verifier) {
		return fault.AccessDenied
	}
	a, err := r.GetTx(trx, id)
	if nil != err {
		return err
	}
	a.Verified = verified
	r.put(trx, a)

	r.log.Infof("verified: %s  %t  by: %s", id, verified, actor)
	e := VerifiedEvent{
		AssetId:  id,
		Verifier: actor,
		Verified: verified,
	}
	trx.OnCommit(func() {
		r.bus.SendJSON(EventVerified, e)
	})
	return nil
}

// Get - committed asset
func (r *Registry) Get(id digest.Digest) (*record.Asset, error) {
	packed := r.store.Pool.Assets.Get(id[:])
	if nil == packed {
		return nil, fault.AssetNotFound
	}
	return record.Packed(packed).UnpackAsset()
}

// GetTx - asset including the transaction's writes
func (r *Registry) GetTx(trx storage.Transaction, id digest.Digest) (*record.Asset, error) {
	packed := trx.Get(r.store.Pool.Assets, id[:])
	if nil == packed {
		return nil, fault.AssetNotFound
	}
	return record.Packed(packed).UnpackAsset()
}

// Owned - committed assets held by an owner
func (r *Registry) Owned(owner *account.Account) ([]*record.Asset, error) {
	ids := []digest.Digest{}
	prefix := owner.Bytes()
	err := r.store.Pool.OwnedAssets.NewFetchCursor().Prefix(prefix).Map(func(key []byte, value []byte) error {
		var id digest.Digest
		if err := digest.FromBytes(&id, key[len(prefix):]); nil != err {
			return err
		}
		ids = append(ids, id)
		return nil
	})
	if nil != err {
		return nil, err
	}

	assets := make([]*record.Asset, 0, len(ids))
	for _, id := range ids {
		a, err := r.Get(id)
		if nil != err {
			r.log.Errorf("owned index: %s  asset error: %s", id, err)
			continue
		}
		// the index is read outside a snapshot so recheck the owner
		if a.Owner.Equal(owner) {
			assets = append(assets, a)
		}
	}
	return assets, nil
}

// Transfer - atomic change of owner
//
// requires the current owner to be from
func (r *Registry) Transfer(trx storage.Transaction, id digest.Digest, from *account.Account, to *account.Account) error {
	if nil == to || nil == to.AccountInterface {
		return fault.MissingParameters
	}
	a, err := r.GetTx(trx, id)
	if nil != err {
		return err
	}
	if !a.Owner.Equal(from) {
		return fault.NotOwner
	}

	trx.Delete(r.store.Pool.OwnedAssets, ownedKey(from, id))
	a.Owner = to
	r.put(trx, a)
	trx.Put(r.store.Pool.OwnedAssets, ownedKey(to, id), present)

	r.log.Debugf("transfer: %s  from: %s  to: %s", id, from, to)
	e := TransferEvent{
		AssetId: id,
		From:    from,
		To:      to,
	}
	trx.OnCommit(func() {
		r.bus.SendJSON(EventTransferred, e)
	})
	return nil
}

// Apply - relay handler for Mint and SetVerified
func (r *Registry) Apply(trx storage.Transaction, actor *account.Account, op record.Operation) error {
	switch o := op.(type) {
	case *record.Mint:
		_, err := r.MintTx(trx, actor, o.ExternalId, o.MetadataRef)
		return err
	case *record.SetVerified:
		return r.SetVerifiedTx(trx, actor, o.AssetId, o.Verified)
	default:
		return fault.InvalidOperation
	}
}

// Tags - operations handled by Apply
func (r *Registry) Tags() []record.TagType {
	return []record.TagType{record.MintTag, record.SetVerifiedTag}
}

func (r *Registry) put(trx storage.Transaction, a *record.Asset) {
	trx.Put(r.store.Pool.Assets, a.Id[:], a.Pack())
}

func ownedKey(owner *account.Account, id digest.Digest) []byte {
	return append(owner.Bytes(), id[:]...)
}
