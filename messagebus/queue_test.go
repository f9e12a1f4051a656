// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/carmarkd/messagebus"
)

const (
	testingDirName = "testing"
)

func TestMain(m *testing.M) {
	os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)
	_ = logger.Initialise(logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	rc := m.Run()
	logger.Finalise()
	os.RemoveAll(testingDirName)
	os.Exit(rc)
}

func TestQueue(t *testing.T) {
	q := messagebus.New(10)

	items := []string{"c1", "c2", "c3"}
	for _, item := range items {
		q.Send(item)
	}

	queue := q.Chan()
	for _, item := range items {
		received := <-queue
		assert.Equal(t, item, received.Command)
	}
}

func TestSendJSON(t *testing.T) {
	q := messagebus.New(1)

	q.SendJSON("ListingSold", map[string]uint64{"price": 1000})
	received := <-q.Chan()
	assert.Equal(t, "ListingSold", received.Command)
	assert.Equal(t, [][]byte{[]byte(`{"price":1000}`)}, received.Parameters)

	// not encodable
	q.SendJSON("bad", make(chan int))
	assert.Equal(t, 0, len(q.Chan()))
}

func TestFullQueueKeepsEverything(t *testing.T) {
	q := messagebus.New(2)

	const n = 50
	for i := 0; i < n; i += 1 {
		q.Send(fmt.Sprintf("c%d", i))
	}
	assert.True(t, q.Backlog() > 0, "backlog while unread")

	for i := 0; i < n; i += 1 {
		select {
		case received := <-q.Chan():
			assert.Equal(t, fmt.Sprintf("c%d", i), received.Command, "order")
		case <-time.After(5 * time.Second):
			t.Fatalf("message: %d not delivered", i)
		}
	}
	assert.Equal(t, uint64(0), q.Backlog(), "backlog drained")
}

func TestSendWhileDraining(t *testing.T) {
	q := messagebus.New(1)

	const n = 200
	done := make(chan []string)
	go func() {
		received := make([]string, 0, n)
		for i := 0; i < n; i += 1 {
			received = append(received, (<-q.Chan()).Command)
		}
		done <- received
	}()

	for i := 0; i < n; i += 1 {
		q.Send(fmt.Sprintf("c%d", i))
	}

	select {
	case received := <-done:
		for i, command := range received {
			assert.Equal(t, fmt.Sprintf("c%d", i), command, "%d: order", i)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("messages not delivered")
	}
}

func TestNilQueue(t *testing.T) {
	var q *messagebus.Queue
	q.Send("ignored")
	q.SendJSON("ignored", 1)
	assert.Equal(t, uint64(0), q.Backlog())
}
