// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"encoding/binary"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/util"
)

// enumeration of supported key algorithms
const (
	// list of valid algorithms
	System  = iota // key-less custody holders, can never sign
	ED25519 = iota
	// end of list (one greater than last item)
	algorithmLimit = iota
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01
	testKeyCode   = 0x02

	algorithmShift = 4 // shift 4 bits to get algorithm

	systemKeyLength = 2
)

// Account - base type for accounts
type Account struct {
	AccountInterface
}

// AccountInterface - the methods every account type provides
type AccountInterface interface {
	KeyType() int
	PublicKeyBytes() []byte
	CheckSignature(message []byte, signature Signature) error
	Bytes() []byte
	String() string
	MarshalText() ([]byte, error)
	IsTesting() bool
}

// ED25519Account - for ed25519 signatures
type ED25519Account struct {
	Test      bool
	PublicKey []byte
}

// SystemAccount - custody holder identified by a small code
type SystemAccount struct {
	Test bool
	Code []byte
}

// AccountFromBase58 - convert a Base58 encoded string to an account
//
// one of the specific account types are returned using the base "AccountInterface"
// interface type to allow individual methods to be called.
func AccountFromBase58(accountBase58Encoded string) (*Account, error) {
	accountDecoded, err := base58.Decode(accountBase58Encoded)
	if nil != err || 0 == len(accountDecoded) {
		return nil, fault.CannotDecodeAccount
	}

	keyVariant, keyVariantLength := util.FromVarint64(accountDecoded)
	if 0 == keyVariantLength || keyVariant&publicKeyCode != publicKeyCode {
		return nil, fault.NotAPublicKey
	}

	keyAlgorithm := keyVariant >> algorithmShift
	if keyAlgorithm >= algorithmLimit {
		return nil, fault.InvalidKeyType
	}

	keyLength := len(accountDecoded) - keyVariantLength - checksumLength
	if keyLength <= 0 {
		return nil, fault.InvalidKeyLength
	}

	checksumStart := len(accountDecoded) - checksumLength
	checksum := sha3.Sum256(accountDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], accountDecoded[checksumStart:]) {
		return nil, fault.ChecksumMismatch
	}

	return fromParts(int(keyAlgorithm), 0 != keyVariant&testKeyCode, accountDecoded[keyVariantLength:checksumStart])
}

// AccountFromBytes - convert the packed (no checksum) form to an account
func AccountFromBytes(accountBytes []byte) (*Account, error) {
	keyVariant, keyVariantLength := util.FromVarint64(accountBytes)
	if 0 == keyVariantLength || keyVariant&publicKeyCode != publicKeyCode {
		return nil, fault.NotAPublicKey
	}

	keyAlgorithm := keyVariant >> algorithmShift
	if keyAlgorithm >= algorithmLimit {
		return nil, fault.InvalidKeyType
	}

	if len(accountBytes) <= keyVariantLength {
		return nil, fault.InvalidKeyLength
	}

	return fromParts(int(keyAlgorithm), 0 != keyVariant&testKeyCode, accountBytes[keyVariantLength:])
}

func fromParts(keyAlgorithm int, isTest bool, key []byte) (*Account, error) {
	k := make([]byte, len(key))
	copy(k, key)

	switch keyAlgorithm {
	case ED25519:
		if ed25519.PublicKeySize != len(k) {
			return nil, fault.InvalidKeyLength
		}
		return &Account{
			AccountInterface: &ED25519Account{
				Test:      isTest,
				PublicKey: k,
			},
		}, nil
	case System:
		if systemKeyLength != len(k) {
			return nil, fault.InvalidKeyLength
		}
		return &Account{
			AccountInterface: &SystemAccount{
				Test: isTest,
				Code: k,
			},
		}, nil
	default:
		return nil, fault.InvalidKeyType
	}
}

// NewSystem - create a custody account from its code
func NewSystem(code uint16, test bool) *Account {
	c := make([]byte, systemKeyLength)
	binary.BigEndian.PutUint16(c, code)
	return &Account{
		AccountInterface: &SystemAccount{
			Test: test,
			Code: c,
		},
	}
}

// Equal - two accounts are the same principal
func (account *Account) Equal(other *Account) bool {
	if nil == account || nil == other || nil == account.AccountInterface || nil == other.AccountInterface {
		return false
	}
	return bytes.Equal(account.Bytes(), other.Bytes())
}

// IsSystem - true for key-less custody accounts
func (account *Account) IsSystem() bool {
	return System == account.KeyType()
}

// UnmarshalText - convert Base58 text to an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	account.AccountInterface = a.AccountInterface
	return nil
}

func encode(algorithm int, test bool, key []byte) []byte {
	keyVariant := byte(algorithm<<algorithmShift) | publicKeyCode
	if test {
		keyVariant |= testKeyCode
	}
	return append([]byte{keyVariant}, key...)
}

func toBase58(buffer []byte) string {
	checksum := sha3.Sum256(buffer)
	return base58.Encode(append(buffer, checksum[:checksumLength]...))
}

// ED25519
// -------

// KeyType - key type code (see enumeration above)
func (account *ED25519Account) KeyType() int {
	return ED25519
}

// PublicKeyBytes - fetch the public key as byte slice
func (account *ED25519Account) PublicKeyBytes() []byte {
	return account.PublicKey[:]
}

// CheckSignature - check the signature of a message
func (account *ED25519Account) CheckSignature(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.InvalidSignature
	}
	if !ed25519.Verify(account.PublicKey[:], message, signature) {
		return fault.InvalidSignature
	}
	return nil
}

// Bytes - byte slice for encoded key
func (account *ED25519Account) Bytes() []byte {
	return encode(ED25519, account.Test, account.PublicKey)
}

// String - base58 encoding of encoded key
func (account *ED25519Account) String() string {
	return toBase58(account.Bytes())
}

// MarshalText - convert an account to its Base58 JSON form
func (account ED25519Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// IsTesting - return whether the public key is in test mode or not
func (account ED25519Account) IsTesting() bool {
	return account.Test
}

// System
// ------

// KeyType - key type code (see enumeration above)
func (account *SystemAccount) KeyType() int {
	return System
}

// PublicKeyBytes - the custody code
func (account *SystemAccount) PublicKeyBytes() []byte {
	return account.Code[:]
}

// CheckSignature - system accounts never sign
func (account *SystemAccount) CheckSignature(message []byte, signature Signature) error {
	return fault.InvalidSignature
}

// Bytes - byte slice for encoded key
func (account *SystemAccount) Bytes() []byte {
	return encode(System, account.Test, account.Code)
}

// String - base58 encoding of encoded key
func (account *SystemAccount) String() string {
	return toBase58(account.Bytes())
}

// MarshalText - convert an account to its Base58 JSON form
func (account SystemAccount) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// IsTesting - return whether the account is in test mode or not
func (account SystemAccount) IsTesting() bool {
	return account.Test
}
