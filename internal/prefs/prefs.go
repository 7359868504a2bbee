package prefs

import (
	"context"
	"errors"
)

// ErrTypeMismatch is returned when a key holding one value type is read or
// appended to as the other.
var ErrTypeMismatch = errors.New("preference type mismatch")

// Store is a durable map of named int and string values.
//
// Absent keys yield the supplied default. Set operations commit before they
// return.
type Store interface {
	GetInt(ctx context.Context, key string, def int) (int, error)
	GetString(ctx context.Context, key, def string) (string, error)
	SetInt(ctx context.Context, key string, value int) error
	SetString(ctx context.Context, key, value string) error

	// AppendString appends fragment to the string stored at key in one
	// commit. An absent key is treated as the empty string.
	AppendString(ctx context.Context, key, fragment string) error
}

// DefaultNamespace is the preference file used when none is configured.
const DefaultNamespace = "cntrPrefs"
