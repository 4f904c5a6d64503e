package storage

import "errors"

// ErrNotFound is returned by Read when no blob is stored under the key.
var ErrNotFound = errors.New("blob not found")

// ErrNotLoaded is returned when a provider is used before Init or Load.
var ErrNotLoaded = errors.New("storage not loaded")

// ErrCorrupt is returned by Load when the backing file exists but cannot be parsed.
var ErrCorrupt = errors.New("storage is corrupt")

//go:generate mockgen -source=interface.go -destination=mock/provider.go -package=mock

// Provider is a durable key-value backend holding whole serialized blobs.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Blobs. Write replaces the entire value stored under key.
	Read(key string) ([]byte, error)
	Write(key string, blob []byte) error

	// Utils
	GetConfigPath() string
}
