// Package config loads and merges application configuration from
// environment variables, command-line flags, and an optional JSON file.
//
// The merge order is env, then flags, then JSON, with the first non-zero
// value winning per field (mergo semantics). [GetStructuredConfig] returns
// the shared server-side view; [GetClientConfig] projects the client
// sections into a validated [ClientConfig].
package config
