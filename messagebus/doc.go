// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - ordered queue carrying events from the engines
// to the publisher
//
// Send never blocks and never discards: a slow subscriber grows the
// backlog instead of stalling a commit or losing an event.
package messagebus
