// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"encoding/json"
	"sync"

	"github.com/bitmark-inc/logger"
)

// DefaultQueueSize - used when a size of zero is requested
const DefaultQueueSize = 1000

// Message - command plus packed parameters
type Message struct {
	Command    string
	Parameters [][]byte
}

// Queue - ordered message queue
//
// Send never blocks and never loses a message: when the channel is
// full, messages wait in an unbounded backlog that a single pump
// goroutine feeds into the channel in order
type Queue struct {
	sync.Mutex
	c       chan Message
	backlog []Message
	pumping bool
	log     *logger.L
}

// New - create a queue
func New(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		c:   make(chan Message, size),
		log: logger.New("bus"),
	}
}

// Send - queue a message
//
// a nil queue discards everything
func (queue *Queue) Send(command string, parameters ...[]byte) {
	if nil == queue {
		return
	}
	m := Message{Command: command, Parameters: parameters}

	queue.Lock()
	defer queue.Unlock()

	if 0 == len(queue.backlog) {
		select {
		case queue.c <- m:
			return
		default:
		}
	}

	queue.backlog = append(queue.backlog, m)
	if !queue.pumping {
		queue.pumping = true
		queue.log.Warnf("queue full: backlog started at: %q", command)
		go queue.pump()
	}
}

// move the backlog into the channel, head first
//
// the head is removed only after it is sent so Send keeps
// appending behind it
func (queue *Queue) pump() {
	for {
		queue.Lock()
		if 0 == len(queue.backlog) {
			queue.pumping = false
			queue.Unlock()
			return
		}
		m := queue.backlog[0]
		queue.Unlock()

		queue.c <- m

		queue.Lock()
		queue.backlog[0] = Message{}
		queue.backlog = queue.backlog[1:]
		queue.Unlock()
	}
}

// SendJSON - queue a message with a single JSON encoded parameter
func (queue *Queue) SendJSON(command string, item interface{}) {
	if nil == queue {
		return
	}
	buffer, err := json.Marshal(item)
	if nil != err {
		queue.log.Errorf("command: %q  JSON error: %s", command, err)
		return
	}
	queue.Send(command, buffer)
}

// Chan - channel to read from
func (queue *Queue) Chan() <-chan Message {
	return queue.c
}

// Backlog - number of messages waiting for space in the channel
func (queue *Queue) Backlog() uint64 {
	if nil == queue {
		return 0
	}
	queue.Lock()
	defer queue.Unlock()
	return uint64(len(queue.backlog))
}
