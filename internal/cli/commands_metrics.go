package cli

import (
	"context"
	"fmt"

	"liftit/internal/app"
	"liftit/internal/domain"
)

func (a *App) stats(ctx context.Context, args []string) error {
	if err := noArgs("stats", args); err != nil {
		return err
	}
	u, err := a.currentUser(ctx)
	if err != nil {
		return err
	}
	stats, err := a.users.Stats(ctx, u.ID)
	if err != nil {
		return err
	}
	return a.print(stats)
}

func (a *App) macros(ctx context.Context, args []string) error {
	if err := noArgs("macros", args); err != nil {
		return err
	}
	u, err := a.currentUser(ctx)
	if err != nil {
		return err
	}
	macros, err := a.metrics.Macros(ctx, u.ID)
	if err != nil {
		return err
	}
	return a.print(macros)
}

func (a *App) chart(ctx context.Context, args []string) error {
	fs := a.newFlagSet("chart")
	days := fs.Int("days", 30, "trailing window in days")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: chart takes one metric", ErrUsage)
	}
	metric := positional[0]
	switch metric {
	case app.MetricWeight, app.MetricProtein, app.MetricWorkout:
	default:
		return fmt.Errorf("%w: unknown metric %q", ErrUsage, metric)
	}

	u, err := a.currentUser(ctx)
	if err != nil {
		return err
	}
	series, err := a.metrics.Chart(ctx, u.ID, metric, *days)
	if err != nil {
		return err
	}
	series.ConvertWeight(domain.UnitForSettings(u.Settings))
	return a.print(series)
}

func (a *App) dashboard(ctx context.Context, args []string) error {
	if err := noArgs("dashboard", args); err != nil {
		return err
	}
	u, err := a.currentUser(ctx)
	if err != nil {
		return err
	}
	dash, err := a.metrics.Dashboard(ctx, u.ID)
	if err != nil {
		return err
	}
	return a.print(dash)
}
