// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"fmt"
	"io/ioutil"
	"math/rand"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carmarkd/fault"
	"github.com/bitmark-inc/carmarkd/rpc/certificate"
	"github.com/bitmark-inc/carmarkd/rpc/fixtures"
	"github.com/bitmark-inc/carmarkd/rpc/listeners"
)

type testHandler struct {
	allow map[string][]*net.IPNet
}

func (h *testHandler) RPC(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("RPC"))
}

func (h *testHandler) Details(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("Details"))
}

func (h *testHandler) Root(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("Root"))
}

func (h *testHandler) SetAllow(allow map[string][]*net.IPNet) {
	h.allow = allow
}

var client = &http.Client{
	Transport: &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	},
	Timeout: 5 * time.Second,
}

func setupHTTPS(t *testing.T) (int, *testHandler, listeners.Listener) {
	allow := "127.0.0.1/32"
	port := rand.Intn(30000) + 30000

	conf := listeners.HTTPSConfiguration{
		MaximumConnections: 5,
		Listen:             []string{fmt.Sprintf("127.0.0.1:%d", port)},
		Allow: map[string][]string{
			"details": {allow},
		},
	}

	cer, key, err := fixtures.CertificatePair()
	if nil != err {
		t.Fatalf("certificate error: %s", err)
	}
	tlsConf, _, err := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, key)
	if nil != err {
		t.Fatalf("get certificate with error: %s", err)
	}

	h := &testHandler{}
	l, err := listeners.NewHTTPS(&conf, logger.New(fixtures.LogCategory), tlsConf, h)
	if nil != err {
		t.Fatalf("NewHTTPS with error: %s", err)
	}
	return port, h, l
}

func get(t *testing.T, url string) string {
	var err error
	for i := 0; i < 50; i += 1 {
		var resp *http.Response
		resp, err = client.Get(url)
		if nil == err {
			defer resp.Body.Close()
			content, _ := ioutil.ReadAll(resp.Body)
			return string(content)
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("client get with error: %s", err)
	return ""
}

func TestHttpsListenerServe(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	port, h, l := setupHTTPS(t)
	assert.Equal(t, 1, len(h.allow["details"]), "allow list not passed to handler")

	err := l.Serve()
	assert.Nil(t, err, "wrong Serve")
	defer l.Close()

	url := fmt.Sprintf("https://127.0.0.1:%d/", port)
	assert.Equal(t, "RPC", get(t, url+"carmarkd/rpc"), "wrong RPC call")
	assert.Equal(t, "Details", get(t, url+"carmarkd/details"), "wrong Details call")
	assert.Equal(t, "Root", get(t, url+"other"), "wrong Root call")
}

func TestNewHTTPSDisabled(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	l, err := listeners.NewHTTPS(&listeners.HTTPSConfiguration{}, logger.New(fixtures.LogCategory), &tls.Config{}, &testHandler{})
	assert.Nil(t, err, "wrong error")
	assert.Nil(t, l, "listener created without listen addresses")
}

func TestNewHTTPSValidation(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	log := logger.New(fixtures.LogCategory)

	_, err := listeners.NewHTTPS(&listeners.HTTPSConfiguration{Listen: []string{"127.0.0.1:2131"}}, log, &tls.Config{}, &testHandler{})
	assert.Equal(t, fault.MissingParameters, err, "wrong error for zero connections")

	_, err = listeners.NewHTTPS(&listeners.HTTPSConfiguration{MaximumConnections: 1, Listen: []string{"127.0.0.1:2131"}}, log, nil, &testHandler{})
	assert.Equal(t, fault.MissingParameters, err, "wrong error for missing certificate")

	conf := listeners.HTTPSConfiguration{
		MaximumConnections: 1,
		Listen:             []string{"127.0.0.1:2131"},
		Allow:              map[string][]string{"details": {"not-a-cidr"}},
	}
	_, err = listeners.NewHTTPS(&conf, log, &tls.Config{}, &testHandler{})
	assert.NotNil(t, err, "invalid cidr accepted")
}
