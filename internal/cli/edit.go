package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tony816/dailyslot/internal/activity"
	"github.com/tony816/dailyslot/internal/grid"
	"github.com/tony816/dailyslot/internal/session"
	"github.com/tony816/dailyslot/internal/ui"
)

func (a *App) planCmd() *cobra.Command {
	var date string
	var base int

	cmd := &cobra.Command{
		Use:   "plan [label]...",
		Short: "Set the planned labels for a base, one per unit",
		Long: `Sets the planned-activity label per unit, in order. Use "-" for an
unplanned unit. Fewer labels than units leaves the tail unplanned.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := resolveDate([]string{date})
			if err != nil {
				return err
			}

			units := make([]string, a.config.UnitCount())
			for i := range units {
				if i >= len(args) || args[i] == "-" {
					continue
				}
				units[i] = a.norm.NormalizeLabel(args[i])
			}

			if err := a.store.SavePlan(cmd.Context(), d, base, units); err != nil {
				return err
			}
			fmt.Printf("plan saved for %s base %d\n", d, base)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&base, "base", 0, "base index")
	return cmd
}

func (a *App) logCmd() *cobra.Command {
	var date string
	var base int

	cmd := &cobra.Command{
		Use:   "log <label> <minutes>",
		Short: "Log actual time spent on an activity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := resolveDate([]string{date})
			if err != nil {
				return err
			}
			mins, err := strconv.Atoi(args[1])
			if err != nil || mins < 0 {
				return fmt.Errorf("invalid minutes %q", args[1])
			}

			s, err := a.openSession(cmd.Context(), d, base)
			if err != nil {
				return err
			}

			s.AddRow(activity.Activity{Label: args[0]})
			s.ApplyDurationChange(len(s.Activities)-1, float64(mins*60))

			if err := a.saveSession(cmd.Context(), d, s); err != nil {
				return err
			}
			fmt.Printf("logged %s on %q\n", ui.FormatDuration(mins*60), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&base, "base", 0, "base index")
	return cmd
}

func (a *App) toggleCmd() *cobra.Command {
	var date string
	var base int

	cmd := &cobra.Command{
		Use:   "toggle <unit>",
		Short: "Toggle the actual state of the plan block around a unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := resolveDate([]string{date})
			if err != nil {
				return err
			}
			unit, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid unit %q", args[0])
			}

			s, err := a.openSession(cmd.Context(), d, base)
			if err != nil {
				return err
			}

			block, ok := grid.BlockRangeAt(s.PlanUnits, unit)
			if !ok {
				return fmt.Errorf("unit %d has no planned block", unit)
			}

			// A toggle flips the whole contiguous same-label block.
			target := !s.Units[unit]
			for u := block.Start; u < block.End; u++ {
				s.Units[u] = target
			}

			// Rebuild grid-sourced rows from the new unit state, keeping
			// everything the grid does not own.
			var kept []activity.Activity
			for i := range s.Activities {
				if s.Activities[i].Source != activity.SourceGrid {
					kept = append(kept, s.Activities[i])
				}
			}
			s.Activities = append(grid.ActivitiesFromUnits(s.PlanUnits, s.Units, s.Step, a.norm), kept...)
			s.Dirty = true
			s.ClampToAssigned()

			if err := a.saveSession(cmd.Context(), d, s); err != nil {
				return err
			}
			fmt.Printf("toggled %q units %d-%d\n", block.Label, block.Start, block.End-1)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&base, "base", 0, "base index")
	return cmd
}

// openSession loads a base into a modal edit session.
func (a *App) openSession(ctx context.Context, date string, base int) (*session.Session, error) {
	planUnits, err := a.loadPlanUnits(ctx, date, base)
	if err != nil {
		return nil, err
	}
	units, raw, err := a.store.LoadDay(ctx, date, base)
	if err != nil {
		return nil, err
	}
	if units == nil {
		acts := activity.NormalizeActivities(raw, a.norm)
		units = grid.UnitsFromActivities(planUnits, acts, a.config.Day.StepSeconds, a.norm)
	}
	return session.New(base, planUnits, units, raw, a.config.Day.StepSeconds, a.norm), nil
}

// saveSession finalizes and persists a session snapshot.
func (a *App) saveSession(ctx context.Context, date string, s *session.Session) error {
	return a.store.SaveDay(ctx, date, s.BaseIndex, s.Units, s.Finalize())
}
