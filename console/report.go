package console

import (
	"context"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"surfacewave/water"
)

const settleBarSize = 16

// SweepSpecAround brackets the spring constant, damping and spread of cfg at
// half and double their value, capped at the bounds water accepts.
func SweepSpecAround(cfg water.Config, ticks int) water.SweepSpec {
	return water.SweepSpec{
		Base:            cfg,
		SpringConstants: bracket(cfg.SpringConstant, water.MaxSpringConstant),
		Dampings:        bracket(cfg.Damping, water.MaxDamping),
		Spreads:         bracket(cfg.Spread, water.MaxSpread),
		Ticks:           ticks,
		Amplitude:       1,
		Tolerance:       1e-3,
	}
}

func bracket(v, limit float64) []float64 {
	out := []float64{v / 2, v, math.Min(v*2, limit)}
	slices.Sort(out)
	return slices.Compact(out)
}

// RunSweepReport runs the sweep around cfg and writes the table to w.
func RunSweepReport(ctx context.Context, cfg water.Config, ticks int, w io.Writer) error {
	results, err := water.Sweep(ctx, SweepSpecAround(cfg, ticks))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, RenderSweep(results, ticks))
	return err
}

// RenderSweep formats results as a table, one row per tuning.
func RenderSweep(results []water.SweepResult, ticks int) string {
	bar := progress.New(
		progress.WithScaledGradient("#1F6FEB", "#7EE787"),
		progress.WithoutPercentage(),
		progress.WithWidth(settleBarSize),
	)
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			fmt.Sprintf("%.4g", r.SpringConstant),
			fmt.Sprintf("%.4g", r.Damping),
			fmt.Sprintf("%.4g", r.Spread),
			fmt.Sprintf("%.4f", r.Peak),
			fmt.Sprintf("%.2e", r.FinalMax),
			sweepStatus(r),
			bar.ViewAs(settleFraction(r)),
		})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("spring", "damping", "spread", "peak", "final |y|", "status", "settled").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 5 && row >= 0 && row < len(results) {
				return statusStyle(results[row])
			}
			return cellStyle
		})
	title := titleStyle.Render(fmt.Sprintf("Stability sweep, %d ticks from a unit displacement", ticks))
	return lipgloss.JoinVertical(lipgloss.Left, title, t.Render())
}

func sweepStatus(r water.SweepResult) string {
	switch {
	case r.Diverged:
		return fmt.Sprintf("diverged @%d", r.DivergedAt)
	case r.Settled:
		return "settled"
	default:
		return "ringing"
	}
}

// settleFraction is how much of the peak swing has died out.
func settleFraction(r water.SweepResult) float64 {
	if r.Diverged || r.Peak == 0 || math.IsNaN(r.FinalMax) {
		return 0
	}
	return 1 - math.Min(1, r.FinalMax/r.Peak)
}

func statusStyle(r water.SweepResult) lipgloss.Style {
	switch {
	case r.Diverged:
		return badStyle
	case r.Settled:
		return goodStyle
	default:
		return cellStyle
	}
}
