// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type AccessError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type PaymentError GenericError
type ProcessError GenericError
type RelayError GenericError
type StateError GenericError

// common errors - keep in alphabetic order
var (
	AccessDenied                 = AccessError("access denied")
	AlreadyInitialised           = ProcessError("already initialised")
	AlreadyListed                = ExistsError("asset already has an active listing")
	AssetNotFound                = NotFoundError("asset not found")
	BalanceOverflow              = ProcessError("balance overflow")
	CannotDecodeAccount          = InvalidError("cannot decode account")
	CannotDecodePrivateKey       = InvalidError("cannot decode private key")
	CannotDecodeSeed             = InvalidError("cannot decode seed")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ChecksumMismatch             = InvalidError("checksum mismatch")
	DatabaseIsNotSet             = ProcessError("database is not set")
	DealAlreadyOpen              = ExistsError("asset already has an open escrow deal")
	DealNotFound                 = NotFoundError("escrow deal not found")
	DuplicateExternalId          = ExistsError("duplicate external identifier")
	Expired                      = RelayError("request expired")
	ExpiryTooDistant             = InvalidError("request expiry too distant")
	ExternalIdTooLong            = InvalidError("external identifier too long")
	InsufficientBalance          = PaymentError("insufficient balance")
	InvalidAmount                = InvalidError("invalid amount")
	InvalidChain                 = InvalidError("invalid chain")
	InvalidCount                 = InvalidError("invalid count")
	InvalidExternalId            = InvalidError("invalid external identifier")
	InvalidFeeRate               = InvalidError("invalid fee rate")
	InvalidIpAddress             = InvalidError("invalid IP address")
	InvalidItem                  = InvalidError("invalid item")
	InvalidKeyLength             = InvalidError("invalid key length")
	InvalidKeyType               = InvalidError("invalid key type")
	InvalidLoggerChannel         = ProcessError("invalid logger channel")
	InvalidOperation             = InvalidError("invalid operation")
	InvalidPortNumber            = InvalidError("invalid port number")
	InvalidPrice                 = InvalidError("invalid price")
	InvalidPrivateKeyFile        = InvalidError("invalid private key file")
	InvalidPublicKeyFile         = InvalidError("invalid public key file")
	InvalidRole                  = InvalidError("invalid role")
	InvalidSeedHeader            = InvalidError("invalid seed header")
	InvalidSeedLength            = InvalidError("invalid seed length")
	InvalidSignature             = RelayError("invalid signature")
	InvalidStructPointer         = InvalidError("invalid struct pointer")
	InvariantViolation           = StateError("invariant violation")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	ListingNotFound              = NotFoundError("listing not found")
	MetadataTooLong              = InvalidError("metadata reference too long")
	MissingParameters            = InvalidError("missing parameters")
	NotAPrivateKey               = InvalidError("not a private key")
	NotAPublicKey                = InvalidError("not a public key")
	NotAvailableInReadOnlyMode   = ProcessError("not available in read-only mode")
	NotInitialised               = ProcessError("not initialised")
	NotesTooLong                 = InvalidError("notes too long")
	NotOwner                     = AccessError("not owner")
	NotRecordPack                = InvalidError("not a record pack")
	NotVerified                  = StateError("asset not verified")
	OperationHandlerMissing      = ProcessError("no handler for operation")
	PaymentMismatch              = PaymentError("payment mismatch")
	RateLimiting                 = ProcessError("rate limiting")
	ReplayRejected               = RelayError("replay rejected")
	RoleAlreadyGranted           = ExistsError("role already granted")
	RoleNotGranted               = NotFoundError("role not granted")
	SelfPurchase                 = InvalidError("buyer and seller are the same")
	SignatureTooLong             = InvalidError("signature too long")
	StateConflict                = StateError("state conflict")
	TooEarly                     = StateError("too early")
	TransactionAborted           = ProcessError("transaction aborted")
	TransactionNotActive         = ProcessError("transaction not active")
	WrongNetworkForPublicKey     = InvalidError("wrong network for public key")
)

// the error interface methods
func (e GenericError) Error() string  { return string(e) }
func (e AccessError) Error() string   { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e PaymentError) Error() string  { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RelayError) Error() string    { return string(e) }
func (e StateError) Error() string    { return string(e) }

// determine the class of an error
func IsErrAccess(e error) bool   { _, ok := e.(AccessError); return ok }
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrPayment(e error) bool  { _, ok := e.(PaymentError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRelay(e error) bool    { _, ok := e.(RelayError); return ok }
func IsErrState(e error) bool    { _, ok := e.(StateError); return ok }
