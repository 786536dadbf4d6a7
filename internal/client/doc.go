// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the vault command-line client.
//
// Commands are built with cobra and talk to the server through
// [adapter.ServerAdapter]. The session token returned by login is kept in a
// token file between invocations.
package client
