// SPDX-License-Identifier: MIT

package server

import "errors"

var (
	errNoServersAreCreated = errors.New("no servers are created")
)
