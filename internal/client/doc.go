// SPDX-License-Identifier: MIT

// Package client implements the client application runtime.
//
// It wires configuration, local storage, the server transport adapter,
// client services, and background synchronization into a single process
// lifecycle.
package client
