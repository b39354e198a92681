package settings

import (
	"fmt"

	"github.com/julianstephens/routina/internal/cli"
	"github.com/julianstephens/routina/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone             *string `help:"IANA timezone used for day boundaries (e.g. America/Chicago)."`
	NotificationsEnabled *bool   `help:"Enable or disable notifications."`
	SplitterBaseURL      *string `help:"Override the task-splitting service endpoint."`
}

func (c *SettingsCmd) Validate() error {
	if c.Timezone != nil && *c.Timezone != "" && !utils.ValidateTimezone(*c.Timezone) {
		return fmt.Errorf("unknown timezone: %s", *c.Timezone)
	}
	return nil
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		splitterURL := settings.SplitterBaseURL
		if splitterURL == "" {
			splitterURL = "(default)"
		}
		fmt.Printf("  Splitter Endpoint:     %s\n", splitterURL)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.SplitterBaseURL != nil {
		settings.SplitterBaseURL = *c.SplitterBaseURL
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
