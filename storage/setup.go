// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/carmarkd/fault"
)

// Pools - the set of exported pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type Pools struct {
	Assets         *PoolHandle `prefix:"A"`
	OwnedAssets    *PoolHandle `prefix:"O"`
	Listings       *PoolHandle `prefix:"L"`
	ActiveListings *PoolHandle `prefix:"M"`
	Deals          *PoolHandle `prefix:"E"`
	OpenDeals      *PoolHandle `prefix:"F"`
	Roles          *PoolHandle `prefix:"R"`
	Counters       *PoolHandle `prefix:"C"`
	Nonces         *PoolHandle `prefix:"N"`
	Balances       *PoolHandle `prefix:"B"`
	TestData       *PoolHandle `prefix:"Z"`
}

// Store - an open database and its pools
type Store struct {
	sync.RWMutex // held exclusively only while a commit writes

	writer   sync.Mutex // held from Begin to Commit/Abort
	log      *logger.L
	db       *leveldb.DB
	cache    Cache
	readOnly bool

	Pool Pools
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Open - open up the database connection
func Open(database string, readOnly bool) (*Store, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(database, opt)
	if nil != err {
		return nil, err
	}
	return newStore(db, readOnly)
}

// OpenMemory - a volatile database, for tests
func OpenMemory() (*Store, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return newStore(db, ReadWrite)
}

func newStore(db *leveldb.DB, readOnly bool) (*Store, error) {
	log := logger.New("storage")

	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return nil, err
	}

	switch {
	case version > currentDBVersion:
		db.Close()
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)

	case 0 == version && !readOnly:
		// database was empty so tag as current version
		if err := putVersion(db, currentDBVersion); nil != err {
			db.Close()
			return nil, err
		}

	case version != currentDBVersion && readOnly:
		db.Close()
		return nil, fmt.Errorf("database version: %d  expected: %d", version, currentDBVersion)
	}

	s := &Store{
		log:      log,
		db:       db,
		cache:    newCache(),
		readOnly: readOnly,
	}

	// this will be a struct type
	poolType := reflect.TypeOf(s.Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&s.Pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {
		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			db.Close()
			return nil, fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix: prefix,
			limit:  limit,
			store:  s,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	log.Infof("opened: version: %d  read only: %t", currentDBVersion, readOnly)
	return s, nil
}

// Close - close the database connection
func (s *Store) Close() {
	s.Lock()
	defer s.Unlock()
	if nil != s.db {
		s.db.Close()
		s.db = nil
		s.cache.Clear()
		s.log.Info("closed")
	}
}

// IsReadOnly - database cannot be written
func (s *Store) IsReadOnly() bool {
	return s.readOnly
}

// Begin - start the single write transaction
//
// blocks while another transaction is active
func (s *Store) Begin() (Transaction, error) {
	if s.readOnly {
		return nil, fault.NotAvailableInReadOnlyMode
	}
	s.writer.Lock()

	s.RLock()
	open := nil != s.db
	s.RUnlock()
	if !open {
		s.writer.Unlock()
		return nil, fault.DatabaseIsNotSet
	}

	return &transaction{
		store:  s,
		active: true,
	}, nil
}

// read a committed value by its full key
func (s *Store) get(key []byte) ([]byte, error) {
	s.RLock()
	defer s.RUnlock()

	if nil == s.db {
		return nil, fault.DatabaseIsNotSet
	}

	if value, found := s.cache.Get(string(key)); found {
		return value, nil
	}

	value, err := s.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	} else if nil != err {
		return nil, err
	}
	s.cache.Set(string(key), value)
	return value, nil
}

func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}
	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))
	return db.Put(versionKey, currentVersion, nil)
}
