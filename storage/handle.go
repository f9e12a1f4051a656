// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/carmarkd/fault"
)

// PoolHandle - one prefixed key range of the store
type PoolHandle struct {
	prefix byte
	limit  []byte
	store  *Store
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Get - read a committed value for a given key
//
// returns nil if not found
func (p *PoolHandle) Get(key []byte) []byte {
	value, err := p.store.get(p.prefixKey(key))
	if nil != err {
		p.store.log.Errorf("pool: %c  get: %x  error: %s", p.prefix, key, err)
		return nil
	}
	return value
}

// GetN - read a committed record and decode as big endian uint64
//
// second parameter is false if record was not found
func (p *PoolHandle) GetN(key []byte) (uint64, bool) {
	return decodeN(p.Get(key))
}

// Has - check if a committed key exists
func (p *PoolHandle) Has(key []byte) bool {
	return nil != p.Get(key)
}

// NewFetchCursor - initialise a cursor over the whole pool
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		maxRange: ldb_util.Range{
			Start: []byte{p.prefix}, // Start of key range, included in the range
			Limit: p.limit,          // Limit of key range, excluded from the range
		},
	}
}

// FetchCursor - cursor structure
type FetchCursor struct {
	pool     *PoolHandle
	maxRange ldb_util.Range
}

// Prefix - restrict the cursor to keys beginning with prefix
func (cursor *FetchCursor) Prefix(prefix []byte) *FetchCursor {
	r := ldb_util.BytesPrefix(cursor.pool.prefixKey(prefix))
	cursor.maxRange = *r
	return cursor
}

// Map - run a function on all committed elements in the range
//
// the function receives copies and may keep them
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.InvalidItem
	}

	s := cursor.pool.store
	s.RLock()
	if nil == s.db {
		s.RUnlock()
		return fault.DatabaseIsNotSet
	}
	snapshot, err := s.db.GetSnapshot()
	s.RUnlock()
	if nil != err {
		return err
	}
	defer snapshot.Release()

	iter := snapshot.NewIterator(&cursor.maxRange, nil)

iterating:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])              // ...

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		err = f(dataKey, dataValue)
		if nil != err {
			break iterating
		}
	}
	iter.Release()
	if nil == err {
		err = iter.Error()
	}
	return err
}

// Fetch - return up to count elements from the range
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if count <= 0 {
		return nil, fault.InvalidCount
	}
	results := make([]Element, 0, count)
	err := cursor.Map(func(key []byte, value []byte) error {
		results = append(results, Element{Key: key, Value: value})
		if len(results) >= count {
			return errFetchFull
		}
		return nil
	})
	if errFetchFull == err {
		err = nil
	}
	return results, err
}

var errFetchFull = fault.ProcessError("fetch full")

func encodeN(n uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, n)
	return buffer
}

func decodeN(buffer []byte) (uint64, bool) {
	if len(buffer) < 8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(buffer[:8]), true
}

// Uint64Key - big endian key so that cursors return numeric order
func Uint64Key(n uint64) []byte {
	return encodeN(n)
}
