// SPDX-License-Identifier: MIT

package config

import "time"

// applyDefaults fills zero-valued fields that have sensible defaults so
// that a bare `-d <dsn>` invocation is enough to start the server and a
// bare `-base-url <url>` invocation is enough to start the client.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = ":8080"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Auth.TokenIssuer == "" {
		cfg.Auth.TokenIssuer = "secure-password-demo"
	}
	if cfg.Auth.TokenDuration == 0 {
		cfg.Auth.TokenDuration = time.Hour
	}
	if cfg.Client.BaseURL == "" {
		cfg.Client.BaseURL = "http://localhost:8080"
	}
	if cfg.Client.RequestTimeout == 0 {
		cfg.Client.RequestTimeout = 15 * time.Second
	}
	if cfg.Workers.SyncInterval == 0 {
		cfg.Workers.SyncInterval = 30 * time.Second
	}
	if cfg.Workers.SyncDebounce == 0 {
		cfg.Workers.SyncDebounce = 500 * time.Millisecond
	}
}

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants required at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Workers.SyncInterval < 0 || cfg.Workers.SyncDebounce < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// validate checks client-side invariants: the client cannot run without a
// server endpoint and a writable local database location.
func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.SyncInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
