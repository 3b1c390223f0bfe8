package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tony816/dailyslot/internal/activity"
	"github.com/tony816/dailyslot/internal/grid"
	"github.com/tony816/dailyslot/internal/ui"
)

func (a *App) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [date]",
		Short: "Show the reconciled day view",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(args)
			if err != nil {
				return err
			}

			for base := 0; base < a.config.Day.Bases; base++ {
				view, err := a.buildDayView(cmd.Context(), date, base)
				if err != nil {
					return err
				}
				fmt.Print(ui.RenderDay(view))
			}
			return nil
		},
	}
}

// buildDayView loads one base and runs it through the reconciliation
// pipeline: normalize rows, rebuild the grid when only rows were
// persisted, derive locked units, and place extras.
func (a *App) buildDayView(ctx context.Context, date string, base int) (ui.DayView, error) {
	step := a.config.Day.StepSeconds

	planUnits, err := a.loadPlanUnits(ctx, date, base)
	if err != nil {
		return ui.DayView{}, err
	}

	units, raw, err := a.store.LoadDay(ctx, date, base)
	if err != nil {
		return ui.DayView{}, err
	}
	acts := activity.NormalizeActivities(raw, a.norm)

	if units == nil {
		units = grid.UnitsFromActivities(planUnits, acts, step, a.norm)
	}

	locked := grid.LockedUnits(planUnits, acts, step)

	planLabels := make(map[string]bool)
	for _, l := range planUnits {
		if l != "" {
			planLabels[a.norm.NormalizeLabel(l)] = true
		}
	}

	extras, orderIndices, order := splitExtras(acts, planLabels)
	alloc := grid.AllocateExtras(planUnits, units, extras, orderIndices, locked, order, planLabels, step)

	return ui.DayView{
		Date:       date,
		BaseIndex:  base,
		PlanUnits:  planUnits,
		Units:      units,
		Locked:     locked,
		Extras:     alloc,
		Activities: acts,
		Step:       step,
	}, nil
}

// loadPlanUnits returns the persisted plan for a base, padded to the
// configured unit count.
func (a *App) loadPlanUnits(ctx context.Context, date string, base int) ([]string, error) {
	stored, err := a.store.LoadPlan(ctx, date, base)
	if err != nil {
		return nil, err
	}

	units := make([]string, a.config.UnitCount())
	for i := range units {
		if i < len(stored) {
			units[i] = stored[i]
		}
	}
	return units, nil
}

// splitExtras picks the non-plan labeled rows out of the full list,
// remembering each one's row index relative to the first grid row so
// allocation can honor list order.
func splitExtras(acts []activity.Activity, planLabels map[string]bool) ([]activity.Activity, []int, *grid.RowOrder) {
	var extras []activity.Activity
	var orderIndices []int
	firstGridRow := -1

	for i := range acts {
		a := &acts[i]
		if a.Source == activity.SourceGrid && firstGridRow < 0 {
			firstGridRow = i
		}
		if a.IsLocked() || a.Label == "" {
			continue
		}
		if planLabels[a.Label] {
			continue
		}
		extras = append(extras, a.Clone())
		orderIndices = append(orderIndices, i)
	}

	return extras, orderIndices, &grid.RowOrder{FirstGridRow: firstGridRow}
}
