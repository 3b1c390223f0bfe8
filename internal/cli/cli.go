// Package cli wires the cobra command tree over the store and core.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tony816/dailyslot/internal/activity"
	"github.com/tony816/dailyslot/internal/config"
	"github.com/tony816/dailyslot/internal/dateutil"
	"github.com/tony816/dailyslot/internal/store"
	"github.com/tony816/dailyslot/internal/ui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store  *store.SQLite
	config *config.Config
	norm   activity.Normalizer
	root   *cobra.Command
}

// NewApp creates a new CLI application with the given store and config.
func NewApp(st *store.SQLite, cfg *config.Config) *App {
	a := &App{store: st, config: cfg, norm: activity.DefaultNormalizer()}

	a.root = &cobra.Command{
		Use:   "dailyslot",
		Short: "Track planned versus actual time per unit of your day",
		Long: `Dailyslot partitions your day into fixed time units, lets you plan
activity labels per unit, and reconciles what actually happened:
toggled grid units, logged activity rows, running timers, and
locked placeholders for time not yet accounted for.`,
	}

	if !cfg.UI.Color {
		ui.DisableColor()
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.planCmd())
	a.root.AddCommand(a.logCmd())
	a.root.AddCommand(a.toggleCmd())
	a.root.AddCommand(a.timerCmd())
	a.root.AddCommand(a.weekCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("dailyslot %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the store.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// resolveDate turns an optional date argument into a day key. Accepts
// YYYY-MM-DD plus the keywords dateutil understands ("today",
// "yesterday", weekday names looking backward).
func resolveDate(args []string) (string, error) {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	d, err := dateutil.Resolve(arg, time.Now())
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", arg, err)
	}
	return d.Format(dateutil.DayKey), nil
}
