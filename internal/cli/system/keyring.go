package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/waktu/internal/cli"
	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/keyring"
	"github.com/julianstephens/waktu/internal/mirror"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
	Get    KeyringGetCmd    `cmd:"" help:"Show a stored secret, masked."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove a secret from the OS keyring."`
	Status KeyringStatusCmd `cmd:"" help:"Check keyring availability and stored secrets."`
}

// KeyringSetCmd stores a named secret in the OS keyring
type KeyringSetCmd struct {
	Name  string `arg:"" enum:"mirror-dsn,redis-password,mqtt-password" help:"Secret name: mirror-dsn, redis-password or mqtt-password."`
	Value string `arg:"" help:"Secret value."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if cmd.Name == keyring.MirrorDSN {
		if _, err := mirror.ValidateConnString(cmd.Value); err != nil {
			if !errors.Is(err, mirror.ErrEmbeddedCredentials) {
				return fmt.Errorf("invalid connection string: %w", err)
			}
			ctx.Println("⚠️  Warning: Connection string contains embedded credentials.")
			ctx.Println("   It will be stored as-is in the encrypted OS keyring.")
			ctx.Println("   Note that the mirror refuses embedded passwords; prefer PGPASSWORD or .pgpass.")
		}
	}

	if err := keyring.Set(cmd.Name, cmd.Value); err != nil {
		return err
	}
	ctx.Printf("✓ %s stored successfully in OS keyring\n", cmd.Name)
	return nil
}

// KeyringGetCmd shows a named secret with its sensitive parts masked
type KeyringGetCmd struct {
	Name string `arg:"" enum:"mirror-dsn,redis-password,mqtt-password" help:"Secret name."`
}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	v, err := keyring.Get(cmd.Name)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring. Use '%s keyring set %s' to store one", cmd.Name, constants.AppName, cmd.Name)
		}
		return fmt.Errorf("failed to retrieve %s from keyring: %w", cmd.Name, err)
	}

	if cmd.Name == keyring.MirrorDSN {
		ctx.Println(maskPassword(v))
	} else {
		ctx.Println(maskSecret(v))
	}
	return nil
}

// KeyringDeleteCmd removes a named secret from the OS keyring
type KeyringDeleteCmd struct {
	Name string `arg:"" enum:"mirror-dsn,redis-password,mqtt-password" help:"Secret name."`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.Delete(cmd.Name); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring", cmd.Name)
		}
		return err
	}
	ctx.Printf("✓ %s deleted from OS keyring\n", cmd.Name)
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}

	ctx.Println("✓ OS keyring is available")
	for _, name := range keyring.Names() {
		if _, err := keyring.Get(name); err == nil {
			ctx.Printf("✓ %s is stored in keyring\n", name)
		} else if errors.Is(err, keyring.ErrNotFound) {
			ctx.Printf("ℹ No %s stored in keyring\n", name)
		} else {
			ctx.Printf("⚠ %s: %v\n", name, err)
		}
	}
	return nil
}

// maskPassword masks passwords in connection strings for display
func maskPassword(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		if idx := strings.Index(connStr, "://"); idx != -1 {
			remaining := connStr[idx+3:]
			// The last @ separates user info from host.
			if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
				userInfo := remaining[:atIdx]
				if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
					return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + connStr[idx+3+atIdx:]
				}
			}
		}
	}

	if strings.Contains(connStr, "password=") {
		parts := strings.Fields(connStr)
		masked := make([]string, 0, len(parts))
		for _, part := range parts {
			if strings.HasPrefix(part, "password=") {
				masked = append(masked, "password=****")
			} else {
				masked = append(masked, part)
			}
		}
		return strings.Join(masked, " ")
	}

	return connStr
}

// maskSecret hides all but the last two characters.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-2:]
}
