// Package keyring keeps waktu's secrets in the OS keyring rather than in the
// environment or the local store.
package keyring

import (
	"errors"
	"fmt"
	"slices"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/waktu/internal/constants"
)

// Secret names.
const (
	MirrorDSN     = "mirror-dsn"
	RedisPassword = "redis-password"
	MQTTPassword  = "mqtt-password"
)

var (
	// ErrNotFound is returned when the secret is not stored.
	ErrNotFound = errors.New("secret not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be reached.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	// ErrUnknownSecret is returned for names outside Names().
	ErrUnknownSecret = errors.New("unknown secret name")
)

// Names lists the secrets waktu reads.
func Names() []string {
	return []string{MirrorDSN, RedisPassword, MQTTPassword}
}

func checkName(name string) error {
	if !slices.Contains(Names(), name) {
		return fmt.Errorf("%w: %q", ErrUnknownSecret, name)
	}
	return nil
}

// Get returns the named secret.
func Get(name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	v, err := keyring.Get(constants.AppName, name)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

// Lookup returns override when it is set, otherwise the named secret. A
// missing secret or unavailable keyring yields "".
func Lookup(name, override string) string {
	if override != "" {
		return override
	}
	v, err := Get(name)
	if err != nil {
		return ""
	}
	return v
}

// Set stores the named secret.
func Set(name, value string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if value == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	if err := keyring.Set(constants.AppName, name, value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", name, err)
	}
	return nil
}

// Delete removes the named secret.
func Delete(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	err := keyring.Delete(constants.AppName, name)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s from keyring: %w", name, err)
	}
	return nil
}

// IsAvailable reports whether the keyring answers a read. A missing entry
// still counts as available.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "availability-probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
