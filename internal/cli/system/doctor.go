package system

import (
	"fmt"

	"github.com/julianstephens/routina/internal/cli"
	"github.com/julianstephens/routina/internal/keyring"
	"github.com/julianstephens/routina/internal/notify"
	"github.com/julianstephens/routina/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
		storeReachable = true
	}

	if storeReachable {
		v := validation.New()

		tasks, err := ctx.Store.GetAllTasks()
		if err != nil {
			fmt.Printf("❌ Task data: FAIL\n   Error: %v\n", err)
			hasError = true
		} else if result := v.ValidateTasks(tasks); result.HasConflicts() {
			fmt.Printf("⚠ Task data: %d problem(s)\n", len(result.Conflicts))
			for _, conflict := range result.Conflicts {
				fmt.Printf("   - %s\n", conflict.Description)
			}
		} else {
			fmt.Printf("✓ Task data: OK (%d tasks)\n", len(tasks))
		}

		routines, err := ctx.Store.GetAllRoutines()
		if err != nil {
			fmt.Printf("❌ Routine data: FAIL\n   Error: %v\n", err)
			hasError = true
		} else if result := v.ValidateRoutines(routines); result.HasConflicts() {
			fmt.Printf("⚠ Routine data: %d problem(s)\n", len(result.Conflicts))
			for _, conflict := range result.Conflicts {
				fmt.Printf("   - %s\n", conflict.Description)
			}
		} else {
			fmt.Printf("✓ Routine data: OK (%d routines)\n", len(routines))
		}

		settings, err := ctx.Store.GetSettings()
		if err != nil {
			fmt.Printf("❌ Settings: FAIL\n   Error: %v\n", err)
			hasError = true
		} else if result := v.ValidateSettings(settings); result.HasConflicts() {
			fmt.Printf("⚠ Settings: %d problem(s)\n", len(result.Conflicts))
			for _, conflict := range result.Conflicts {
				fmt.Printf("   - %s\n", conflict.Description)
			}
		} else {
			fmt.Printf("✓ Settings: OK\n")
		}
	} else {
		fmt.Printf("⊘ Data checks: SKIPPED (storage not reachable)\n")
	}

	// Warning only: the tray agent is optional and reminders degrade
	// gracefully without it.
	if triggers, err := ctx.Notify.ListDeclared(); err != nil {
		fmt.Printf("⚠ Notification tray agent: WARNING\n")
		fmt.Printf("   %v\n", err)
		if notify.Classify(err) == notify.ResultPermanent {
			fmt.Println("   Grant notification permission to the tray app and retry.")
		}
	} else {
		fmt.Printf("✓ Notification tray agent: OK (%d trigger(s) declared)\n", len(triggers))
	}

	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: WARNING (unavailable, task splitting will not work)\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}
