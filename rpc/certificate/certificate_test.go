// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/rpc/certificate"
	"github.com/bitmark-inc/carmarkd/rpc/fixtures"
)

func TestGet(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	cer, key, err := fixtures.CertificatePair()
	if !assert.Nil(t, err, "certificate generation") {
		return
	}

	tlsConfig, fingerprint, err := certificate.Get(
		logger.New(fixtures.LogCategory),
		"test",
		cer,
		key,
	)
	assert.Nil(t, err, "wrong Get")

	pair, _ := tls.X509KeyPair([]byte(cer), []byte(key))

	assert.Equal(t, sha3.Sum256(pair.Certificate[0]), fingerprint, "wrong fingerprint")
	assert.Equal(t, pair.Certificate, tlsConfig.Certificates[0].Certificate, "wrong config")
}

func TestGetInvalid(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	cer, _, err := fixtures.CertificatePair()
	if !assert.Nil(t, err, "certificate generation") {
		return
	}
	_, otherKey, _ := fixtures.CertificatePair()

	_, _, err = certificate.Get(logger.New(fixtures.LogCategory), "test", cer, otherKey)
	assert.NotNil(t, err, "mismatched key accepted")
}

func TestGetFiles(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	cer, key, err := fixtures.CertificatePair()
	if !assert.Nil(t, err, "certificate generation") {
		return
	}

	dir, _ := ioutil.TempDir("", "carmarkd-certificate")
	defer os.RemoveAll(dir)

	certificateFile := filepath.Join(dir, "rpc.crt")
	keyFile := filepath.Join(dir, "rpc.key")
	_ = ioutil.WriteFile(certificateFile, []byte(cer), 0600)
	_ = ioutil.WriteFile(keyFile, []byte(key), 0600)

	log := logger.New(fixtures.LogCategory)
	_, fingerprint, err := certificate.GetFiles(log, "test", certificateFile, keyFile)
	assert.Nil(t, err)

	_, expected, _ := certificate.Get(log, "test", cer, key)
	assert.Equal(t, expected, fingerprint)

	_, _, err = certificate.GetFiles(log, "test", filepath.Join(dir, "missing.crt"), keyFile)
	assert.NotNil(t, err)
}
