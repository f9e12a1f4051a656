// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
)

type feeRateSetter interface {
	SetFeeRateBps(uint64) error
}

// re-read only what can change while running
type feeRateReader func(file string) (uint64, error)

// configWatcher - reload the default fee rate when the configuration file changes
//
// the directory is watched so that editors which replace the file
// are still seen
type configWatcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	filePath string
	market   feeRateSetter
	read     feeRateReader
}

func newConfigWatcher(targetFile string, market feeRateSetter, read feeRateReader) (*configWatcher, error) {
	log := logger.New("watcher")

	filePath, err := filepath.Abs(filepath.Clean(targetFile))
	if nil != err {
		return nil, err
	}
	if _, err := os.Stat(filePath); nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}
	err = watcher.Add(filepath.Dir(filePath))
	if nil != err {
		watcher.Close()
		return nil, err
	}

	return &configWatcher{
		log:      log,
		watcher:  watcher,
		filePath: filePath,
		market:   market,
		read:     read,
	}, nil
}

// Run - event loop, the watcher is closed on shutdown
func (w *configWatcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log
	log.Infof("watching: %q", w.filePath)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if !w.isConfigChange(event) {
				continue loop
			}
			log.Infof("file event: %v", event)
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watcher error: %s", err)
		}
	}
	w.watcher.Close()
	log.Info("watcher stopped")
}

func (w *configWatcher) isConfigChange(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.filePath {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create) != 0
}

// a bad file leaves the running rate untouched
func (w *configWatcher) reload() {
	feeRate, err := w.read(w.filePath)
	if nil != err {
		w.log.Errorf("reload: %q  error: %s", w.filePath, err)
		return
	}
	err = w.market.SetFeeRateBps(feeRate)
	if nil != err {
		w.log.Errorf("reload: fee rate: %d  error: %s", feeRate, err)
	}
}

// the production reader
func readFeeRate(file string) (uint64, error) {
	configuration, err := getConfiguration(file)
	if nil != err {
		return 0, err
	}
	return configuration.FeeRateBps, nil
}
