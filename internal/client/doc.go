// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the planner-sync command line client.
//
// [App] wires the local SQLite store, the HTTP server adapter and the client
// sync services. The cobra commands in this package drive it either one shot
// (config, status, sync, test, put) or as a long-running process (run) that
// watches the local store and syncs on edits and on a timer.
package client
