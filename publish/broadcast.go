// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/carmarkd/counter"
	"github.com/bitmark-inc/carmarkd/messagebus"
	"github.com/bitmark-inc/carmarkd/util"
	"github.com/bitmark-inc/carmarkd/zmqutil"
)

const (
	broadcasterZapDomain = "broadcaster"
)

type broadcaster struct {
	log       *logger.L
	events    *logger.L
	queue     *messagebus.Queue
	socket4   *zmq.Socket
	socket6   *zmq.Socket
	published counter.Counter
}

// initialise the broadcaster
func (brdc *broadcaster) initialise(privateKey []byte, publicKey []byte, broadcast []*util.Connection, queue *messagebus.Queue) error {

	log := logger.New("broadcaster")

	brdc.log = log
	brdc.events = logger.New("events")
	brdc.queue = queue

	log.Info("initialising…")

	if 0 == len(broadcast) {
		log.Info("no broadcast addresses: events are only logged")
		return nil
	}

	socket4, socket6, err := zmqutil.NewBind(log, zmq.PUB, broadcasterZapDomain, privateKey, publicKey, broadcast)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return err
	}

	brdc.socket4 = socket4
	brdc.socket6 = socket6

	return nil
}

// wait for new events
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {

	log := brdc.log

	log.Info("starting…")

loop:
	for {
		log.Debug("waiting…")
		select {
		case <-shutdown:
			break loop
		case item := <-brdc.queue.Chan():
			brdc.process(item)
		}
	}

	log.Info("shutting down…")
	if nil != brdc.socket4 {
		brdc.socket4.Close()
		brdc.socket4 = nil
	}
	if nil != brdc.socket6 {
		brdc.socket6.Close()
		brdc.socket6 = nil
	}
	log.Info("stopped")
}

// log and publish one event
func (brdc *broadcaster) process(item messagebus.Message) {
	for _, p := range item.Parameters {
		brdc.events.Infof("%s: %s", item.Command, p)
	}

	for _, socket := range []*zmq.Socket{brdc.socket4, brdc.socket6} {
		if nil == socket {
			continue
		}
		if _, err := socket.SendMessage(item.Command, item.Parameters); nil != err {
			brdc.log.Errorf("send: %s  error: %s", item.Command, err)
		}
	}
	brdc.published.Increment()
}
