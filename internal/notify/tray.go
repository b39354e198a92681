package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/routina/internal/constants"
	apperrors "github.com/julianstephens/routina/internal/errors"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// TrayScheduler is a Scheduler backed by the local routina-tray agent, which
// owns OS notification permission and delivery. The agent is discovered via a
// lockfile containing "port|pid|secret"; the pid is validated against a
// running routina-tray process before any request is sent.
type TrayScheduler struct {
	client *http.Client

	// overridable for tests
	baseURL string
	secret  string
}

func NewTrayScheduler() *TrayScheduler {
	return &TrayScheduler{client: &http.Client{Timeout: 10 * time.Second}}
}

// GetTrayAppConfigDir returns the configuration directory used by the tray agent.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	// A settings.json may redirect the lockfile to a custom directory.
	settingsPath := filepath.Join(trayConfigDir, "settings.json")
	if _, err := os.Stat(settingsPath); err == nil {
		data, err := os.ReadFile(settingsPath)
		if err == nil {
			var store struct {
				Settings struct {
					LockfileDir *string `json:"lockfile_dir"`
				} `json:"settings"`
			}
			if err := json.Unmarshal(data, &store); err == nil {
				if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
					return *store.Settings.LockfileDir, nil
				}
			}
		}
	}

	return trayConfigDir, nil
}

func (s *TrayScheduler) connect() error {
	if s.baseURL != "" {
		return nil
	}

	trayConfigDir, err := GetTrayAppConfigDir()
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrSchedulerFailure, err)
	}

	port, secret, err := findAndValidateTrayProcess(filepath.Join(trayConfigDir, constants.NotifierLockfileName))
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrSchedulerFailure, err)
	}

	s.baseURL = fmt.Sprintf("http://127.0.0.1:%s", port)
	s.secret = secret
	return nil
}

func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("routina-tray is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := parts[0]
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", errors.New("routina-tray process not running")
	}
	if !strings.HasPrefix(process.Executable(), "routina-tray") {
		return "", "", fmt.Errorf("process with PID %d is not routina-tray (is %s)", pid, process.Executable())
	}

	return port, secret, nil
}

func (s *TrayScheduler) Declare(t Trigger) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrSchedulerFailure, err)
	}
	body, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrSchedulerFailure, err)
	}
	return s.do(http.MethodPost, "/triggers", body, nil)
}

func (s *TrayScheduler) CancelByIdentifier(identifier string) error {
	return s.do(http.MethodDelete, "/triggers/"+url.PathEscape(identifier), nil, nil)
}

func (s *TrayScheduler) CancelByPrefix(prefix string) error {
	return s.do(http.MethodDelete, "/triggers?prefix="+url.QueryEscape(prefix), nil, nil)
}

func (s *TrayScheduler) ListDeclared() ([]Trigger, error) {
	var triggers []Trigger
	if err := s.do(http.MethodGet, "/triggers", nil, &triggers); err != nil {
		return nil, err
	}
	return triggers, nil
}

// do sends one request to the tray agent, retrying transient failures. A 403
// means OS notification permission has not been granted; that is reported as
// ErrPermissionDenied and never retried here.
func (s *TrayScheduler) do(method, path string, body []byte, out interface{}) error {
	if err := s.connect(); err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt < constants.NotifyMaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(constants.NotifyRetryDelay)
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequest(method, s.baseURL+path, reader)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrSchedulerFailure, err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Routina-Secret", s.secret)

		res, err := s.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		switch res.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusNoContent:
			if out != nil {
				err = json.NewDecoder(res.Body).Decode(out)
			}
			res.Body.Close()
			if err != nil {
				return fmt.Errorf("%w: decoding response: %v", apperrors.ErrSchedulerFailure, err)
			}
			return nil
		case http.StatusForbidden:
			res.Body.Close()
			return apperrors.ErrPermissionDenied
		default:
			resBody, _ := io.ReadAll(res.Body)
			res.Body.Close()
			lastErr = fmt.Errorf("status %d: %s", res.StatusCode, string(resBody))
		}
	}

	return fmt.Errorf("%w: %v", apperrors.ErrSchedulerFailure, lastErr)
}
