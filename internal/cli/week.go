package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tony816/dailyslot/internal/dateutil"
	"github.com/tony816/dailyslot/internal/summary"
	"github.com/tony816/dailyslot/internal/ui"
)

func (a *App) weekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week [date]",
		Short: "Summarize a week's logged time per label",
		Long: `Aggregates assigned seconds per label across every base of the
Monday-to-Sunday week containing the given date (default today).
Locked placeholder time is excluded.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			ref, err := dateutil.Resolve(arg, time.Now())
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", arg, err)
			}

			week, err := summary.BuildWeekSummary(cmd.Context(), a.store, ref, a.config.Day.Bases, a.norm)
			if err != nil {
				return fmt.Errorf("building week summary: %w", err)
			}

			fmt.Println(ui.RenderWeek(week))
			return nil
		},
	}
}
