// SPDX-License-Identifier: MIT

// Package adapter provides the client's transport layer for talking to the
// vault server.
//
// The primary abstraction is [ServerAdapter], which decouples the sync engine
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrVersionConflict] for 409, [ErrUnauthorized] for
// 401).
package adapter

import (
	"context"

	"github.com/Konduru-Hemesh/secure-password-demo/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the vault
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests. Called after a successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates an account on the server. On success the returned
	// bearer token is stored via SetToken.
	Register(ctx context.Context, user models.User) (models.Token, error)

	// Login authenticates against the server. On success the returned bearer
	// token is stored via SetToken.
	Login(ctx context.Context, user models.User) (models.Token, error)

	// GetVault fetches the authoritative server state: the vault version,
	// every entry, and the last sync timestamp.
	GetVault(ctx context.Context) (models.VaultResponse, error)

	// PushDelta submits a delta for merging. On a version-gate rejection it
	// returns the server's conflict payload together with
	// ErrVersionConflict; the caller resolves and retries against the
	// reported version.
	PushDelta(ctx context.Context, delta models.SyncDelta) (models.SyncResult, *models.ConflictResponse, error)
}
