package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tony816/dailyslot/internal/timer"
	"github.com/tony816/dailyslot/internal/ui"
)

func (a *App) timerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run a timer that lands as an activity row when stopped",
	}
	cmd.AddCommand(a.timerStartCmd())
	cmd.AddCommand(a.timerStopCmd())
	cmd.AddCommand(a.timerStatusCmd())
	return cmd
}

func (a *App) timerStartCmd() *cobra.Command {
	var base int

	cmd := &cobra.Command{
		Use:   "start <label>",
		Short: "Start a timer for an activity label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, running, err := a.store.LoadTimer(cmd.Context()); err != nil {
				return err
			} else if running {
				return fmt.Errorf("a timer is already running; stop it first")
			}

			t := timer.Start(a.norm.NormalizeLabel(args[0]), base, time.Now())
			if err := a.store.SaveTimer(cmd.Context(), t); err != nil {
				return err
			}
			fmt.Printf("timer started for %q\n", t.Label)
			return nil
		},
	}

	cmd.Flags().IntVar(&base, "base", 0, "base index")
	return cmd
}

func (a *App) timerStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer and log the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, running, err := a.store.LoadTimer(cmd.Context())
			if err != nil {
				return err
			}
			if !running {
				return fmt.Errorf("no timer is running")
			}

			res := a.stopTimer(t, time.Now())

			date := t.StartedAt.Format("2006-01-02")
			s, err := a.openSession(cmd.Context(), date, res.BaseIndex)
			if err != nil {
				return err
			}
			s.Activities = append(s.Activities, res.Row())
			s.Dirty = true
			s.ClampToAssigned()

			if err := a.saveSession(cmd.Context(), date, s); err != nil {
				return err
			}
			if err := a.store.ClearTimer(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("logged %s on %q\n", ui.FormatDuration(res.Seconds), res.Label)
			return nil
		},
	}
}

func (a *App) timerStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, running, err := a.store.LoadTimer(cmd.Context())
			if err != nil {
				return err
			}
			if !running {
				fmt.Println("no timer running")
				return nil
			}
			fmt.Printf("%q running for %s (base %d)\n",
				t.Label, ui.FormatDuration(t.ElapsedSeconds(time.Now())), t.BaseIndex)
			return nil
		},
	}
}

// stopTimer ends a running timer. The result lands on the day the timer
// started, so the cutoff is that day's configured end: a timer forgotten
// overnight clips there instead of bleeding into the next morning.
func (a *App) stopTimer(t timer.Timer, now time.Time) timer.Result {
	return t.Stop(now, a.dayEnd(t.StartedAt), a.config.Day.StepSeconds)
}

// dayEnd resolves the configured end of day for the given date.
func (a *App) dayEnd(ref time.Time) time.Time {
	end := a.config.Day.End
	hour := int(end[0]-'0')*10 + int(end[1]-'0')
	min := int(end[3]-'0')*10 + int(end[4]-'0')
	return time.Date(ref.Year(), ref.Month(), ref.Day(), hour, min, 0, 0, ref.Location())
}
