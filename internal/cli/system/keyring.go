package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/routina/internal/cli"
	"github.com/julianstephens/routina/internal/keyring"
)

// KeyringSetCmd stores the splitter API key in the OS keyring
type KeyringSetCmd struct {
	Key string `arg:"" help:"Splitter API key to store in the keyring."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if strings.TrimSpace(cmd.Key) == "" {
		return errors.New("API key must not be empty")
	}
	if err := keyring.SetAPIKey(cmd.Key); err != nil {
		return fmt.Errorf("failed to store API key in keyring: %w", err)
	}
	fmt.Println("✓ API key stored in OS keyring")
	return nil
}

// KeyringDeleteCmd removes the splitter API key from the OS keyring
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring")
		}
		return fmt.Errorf("failed to delete API key from keyring: %w", err)
	}
	fmt.Println("✓ API key deleted from OS keyring")
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return errors.New("OS keyring is not available")
	}
	fmt.Println("✓ OS keyring is available")
	if _, err := keyring.GetAPIKey(); err == nil {
		fmt.Println("✓ Splitter API key is set")
	} else if errors.Is(err, keyring.ErrNotFound) {
		fmt.Println("  No splitter API key stored. Set one with 'routina keyring set'.")
	}
	return nil
}
