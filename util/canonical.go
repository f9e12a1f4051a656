// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"net"
	"strconv"
	"strings"

	"github.com/bitmark-inc/carmarkd/fault"
)

// Connection - a numeric IP address and port
type Connection struct {
	ip   net.IP
	port int
}

// NewConnection - parse an IP:Port
//
// examples:
//
//	IPv4:  127.0.0.1:1234
//	IPv6:  [::1]:1234
func NewConnection(hostPort string) (*Connection, error) {
	host, port, err := net.SplitHostPort(strings.TrimSpace(hostPort))
	if nil != err {
		return nil, fault.InvalidIpAddress
	}

	IP := net.ParseIP(strings.Trim(host, " "))
	if nil == IP {
		return nil, fault.InvalidIpAddress
	}

	numericPort, err := strconv.Atoi(strings.Trim(port, " "))
	if nil != err {
		return nil, fault.InvalidPortNumber
	}
	if numericPort < 1 || numericPort > 65535 {
		return nil, fault.InvalidPortNumber
	}
	return &Connection{
		ip:   IP,
		port: numericPort,
	}, nil
}

// NewConnections - parse a list of IP:Port
func NewConnections(hostPorts []string) ([]*Connection, error) {
	c := make([]*Connection, 0, len(hostPorts))
	for _, hostPort := range hostPorts {
		conn, err := NewConnection(hostPort)
		if nil != err {
			return nil, err
		}
		c = append(c, conn)
	}
	return c, nil
}

// CanonicalIPandPort - the address with a prefix and whether it is IPv6
//
// prefix is typically "" or "tcp://"
func (conn *Connection) CanonicalIPandPort(prefix string) (string, bool) {
	port := strconv.Itoa(conn.port)
	if nil != conn.ip.To4() {
		return prefix + conn.ip.String() + ":" + port, false
	}
	return prefix + "[" + conn.ip.String() + "]:" + port, true
}

// String - canonical form without prefix
func (conn *Connection) String() string {
	s, _ := conn.CanonicalIPandPort("")
	return s
}
