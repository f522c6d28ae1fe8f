package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/waktu/internal/constants"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// trayPayload is the webhook body understood by the tray agent.
type trayPayload struct {
	Notification
	DurationMs uint32 `json:"duration_ms"`
}

// trayEndpoint is a validated lockfile entry.
type trayEndpoint struct {
	port   string
	secret string
}

// TrayNotifier hands notifications to the desktop tray agent, which shows
// them even when no terminal is attached.
type TrayNotifier struct {
	client *http.Client
}

func NewTray() *TrayNotifier {
	return &TrayNotifier{client: &http.Client{Timeout: 5 * time.Second}}
}

func (t *TrayNotifier) Available(context.Context) error {
	if _, err := locateTray(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	return nil
}

func (t *TrayNotifier) Notify(ctx context.Context, n Notification) error {
	ep, err := locateTray()
	if err != nil {
		return err
	}
	return t.send(ctx, ep, trayPayload{
		Notification: n,
		DurationMs:   constants.NotificationDurationMs,
	})
}

func locateTray() (trayEndpoint, error) {
	dir, err := TrayLockfileDir()
	if err != nil {
		return trayEndpoint{}, err
	}
	return readLockfile(filepath.Join(dir, constants.NotifierLockfileName))
}

// TrayLockfileDir returns where the tray agent writes its lockfile. The
// agent's settings.json may relocate it.
func TrayLockfileDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	dir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(dir, "settings.json"))
	if err != nil {
		return dir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err == nil && store.Settings.LockfileDir != "" {
		return store.Settings.LockfileDir, nil
	}
	return dir, nil
}

// readLockfile parses "port|pid|secret" and checks that pid is the tray.
func readLockfile(path string) (trayEndpoint, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return trayEndpoint{}, errors.New(constants.TrayExecutablePrefix + " is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return trayEndpoint{}, errors.New("lockfile is malformed")
	}
	port, pidStr, secret := strings.TrimSpace(parts[0]), parts[1], strings.TrimSpace(parts[2])

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return trayEndpoint{}, fmt.Errorf("invalid port %q in lockfile", port)
	}
	if portNum < 1 || portNum > 65535 {
		return trayEndpoint{}, fmt.Errorf("port %d is outside 1-65535", portNum)
	}
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		return trayEndpoint{}, errors.New("invalid process ID in lockfile")
	}
	if secret == "" {
		return trayEndpoint{}, errors.New("secret in lockfile is empty")
	}

	proc, err := findProcessFunc(pid)
	if err != nil || proc == nil {
		return trayEndpoint{}, errors.New(constants.TrayExecutablePrefix + " process not running")
	}
	if !strings.HasPrefix(proc.Executable(), constants.TrayExecutablePrefix) {
		return trayEndpoint{}, fmt.Errorf("process %d is %s, not %s", pid, proc.Executable(), constants.TrayExecutablePrefix)
	}
	return trayEndpoint{port: port, secret: secret}, nil
}

func (t *TrayNotifier) send(ctx context.Context, ep trayEndpoint, payload trayPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://127.0.0.1:"+ep.port, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Waktu-Secret", ep.secret)

	res, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("tray delivery failed: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: tray rejected secret", ErrDenied)
	}
	msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
	return fmt.Errorf("tray delivery failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
}
