package config

import "errors"

var (
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configs: base url and request timeout are required")
	ErrInvalidStorageConfigs = errors.New("invalid storage configs: local database DSN is required")
	ErrInvalidWorkerConfigs  = errors.New("invalid worker configs: sync interval and debounce must be positive")
)
