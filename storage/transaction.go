// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/carmarkd/fault"
)

// Transaction - the single active write transaction
type Transaction interface {
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	Savepoint() Savepoint
	RollbackTo(Savepoint)
	OnCommit(func())
	Commit() error
	Abort()
}

// Savepoint - position in a transaction to roll back to
type Savepoint struct {
	ops   int
	hooks int
}

const (
	dbPut = iota
	dbDelete
)

type operation struct {
	op    int
	key   []byte
	value []byte
}

type transaction struct {
	store  *Store
	ops    []operation
	hooks  []func()
	active bool
}

func (t *transaction) Put(p *PoolHandle, key []byte, value []byte) {
	v := make([]byte, len(value))
	copy(v, value)
	t.ops = append(t.ops, operation{op: dbPut, key: p.prefixKey(key), value: v})
}

func (t *transaction) PutN(p *PoolHandle, key []byte, value uint64) {
	t.Put(p, key, encodeN(value))
}

func (t *transaction) Delete(p *PoolHandle, key []byte) {
	t.ops = append(t.ops, operation{op: dbDelete, key: p.prefixKey(key)})
}

// Get - latest value including this transaction's own writes
func (t *transaction) Get(p *PoolHandle, key []byte) []byte {
	fullKey := p.prefixKey(key)
	for i := len(t.ops) - 1; i >= 0; i -= 1 {
		if bytes.Equal(t.ops[i].key, fullKey) {
			if dbDelete == t.ops[i].op {
				return nil
			}
			return t.ops[i].value
		}
	}
	return p.Get(key)
}

func (t *transaction) GetN(p *PoolHandle, key []byte) (uint64, bool) {
	return decodeN(t.Get(p, key))
}

func (t *transaction) Has(p *PoolHandle, key []byte) bool {
	return nil != t.Get(p, key)
}

func (t *transaction) Savepoint() Savepoint {
	return Savepoint{ops: len(t.ops), hooks: len(t.hooks)}
}

// RollbackTo - discard writes and hooks added after the savepoint
func (t *transaction) RollbackTo(sp Savepoint) {
	if sp.ops <= len(t.ops) {
		t.ops = t.ops[:sp.ops]
	}
	if sp.hooks <= len(t.hooks) {
		t.hooks = t.hooks[:sp.hooks]
	}
}

// OnCommit - run f after a successful commit, in commit order
func (t *transaction) OnCommit(f func()) {
	t.hooks = append(t.hooks, f)
}

// Commit - write all changes atomically and release the writer
func (t *transaction) Commit() error {
	if !t.active {
		return fault.TransactionNotActive
	}
	s := t.store
	t.active = false

	batch := new(leveldb.Batch)
	for _, o := range t.ops {
		if dbDelete == o.op {
			batch.Delete(o.key)
		} else {
			batch.Put(o.key, o.value)
		}
	}

	s.Lock()
	err := error(fault.DatabaseIsNotSet)
	if nil != s.db {
		err = s.db.Write(batch, nil)
	}
	if nil == err {
		for _, o := range t.ops {
			if dbDelete == o.op {
				s.cache.Remove(string(o.key))
			} else {
				s.cache.Set(string(o.key), o.value)
			}
		}
	} else {
		s.cache.Clear()
	}
	s.Unlock()

	if nil != err {
		s.writer.Unlock()
		s.log.Errorf("commit: %d operations  error: %s", len(t.ops), err)
		return err
	}

	// hooks run before the writer is released so that events
	// leave in commit order; they must not start a transaction
	for _, f := range t.hooks {
		f()
	}
	s.writer.Unlock()
	return nil
}

// Abort - discard all changes and release the writer
//
// safe to call after Commit
func (t *transaction) Abort() {
	if !t.active {
		return
	}
	t.active = false
	t.ops = nil
	t.hooks = nil
	t.store.writer.Unlock()
}

// Update - run f inside a transaction, committing only if f succeeds
func (s *Store) Update(f func(Transaction) error) error {
	trx, err := s.Begin()
	if nil != err {
		return err
	}
	defer trx.Abort()

	if err := f(trx); nil != err {
		return err
	}
	return trx.Commit()
}

// NextCounter - increment a named counter and return the new value
//
// the first value returned is 1
func NextCounter(trx Transaction, pool *PoolHandle, name string) uint64 {
	n, _ := trx.GetN(pool, []byte(name))
	n += 1
	trx.PutN(pool, []byte(name), n)
	return n
}
