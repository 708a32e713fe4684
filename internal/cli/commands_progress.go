package cli

import (
	"context"
	"fmt"
	"strconv"

	"liftit/internal/domain"
)

func (a *App) weight(ctx context.Context, args []string) error {
	fs := a.newFlagSet("weight")
	unit := fs.String("unit", "", "kg or lb; defaults to the units setting")
	note := fs.String("note", "", "free-form note")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: weight takes exactly one value", ErrUsage)
	}
	value, err := strconv.ParseFloat(positional[0], 64)
	if err != nil {
		return fmt.Errorf("%w: invalid weight %q", ErrUsage, positional[0])
	}

	u, err := a.currentUser(ctx)
	if err != nil {
		return err
	}
	if *unit == "" {
		*unit = domain.UnitForSettings(u.Settings)
	}
	if *unit != domain.UnitKg && *unit != domain.UnitLb {
		return fmt.Errorf("%w: unit must be kg or lb", ErrUsage)
	}

	in := domain.WeightInput{Value: domain.ToKg(value, *unit), Note: *note}
	return a.record(ctx, u, in)
}

func (a *App) measure(ctx context.Context, args []string) error {
	fs := a.newFlagSet("measure")
	arm := fs.Float64("arm", 0, "arm circumference in cm")
	chest := fs.Float64("chest", 0, "chest circumference in cm")
	thigh := fs.Float64("thigh", 0, "thigh circumference in cm")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := noArgs("measure", positional); err != nil {
		return err
	}

	u, err := a.currentUser(ctx)
	if err != nil {
		return err
	}

	set := setFlags(fs)
	var in domain.MeasurementInput
	if set["arm"] {
		in.Arm = arm
	}
	if set["chest"] {
		in.Chest = chest
	}
	if set["thigh"] {
		in.Thigh = thigh
	}
	return a.record(ctx, u, in)
}

func (a *App) workout(ctx context.Context, args []string) error {
	fs := a.newFlagSet("workout")
	typ := fs.String("type", "", "workout type, e.g. push or run")
	duration := fs.Float64("duration", 0, "duration in minutes")
	calories := fs.Float64("calories", 0, "calories burned")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := noArgs("workout", positional); err != nil {
		return err
	}

	u, err := a.currentUser(ctx)
	if err != nil {
		return err
	}
	return a.record(ctx, u, domain.WorkoutInput{Type: *typ, Duration: *duration, Calories: *calories})
}

func (a *App) eat(ctx context.Context, args []string) error {
	fs := a.newFlagSet("eat")
	calories := fs.Float64("calories", 0, "kcal")
	protein := fs.Float64("protein", 0, "protein in g")
	carbs := fs.Float64("carbs", 0, "carbohydrates in g")
	fat := fs.Float64("fat", 0, "fat in g")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := noArgs("eat", positional); err != nil {
		return err
	}

	u, err := a.currentUser(ctx)
	if err != nil {
		return err
	}
	return a.record(ctx, u, domain.NutritionInput{Calories: *calories, Protein: *protein, Carbs: *carbs, Fat: *fat})
}

func (a *App) record(ctx context.Context, u *domain.User, in domain.ProgressInput) error {
	if _, err := a.users.AddProgress(ctx, u.ID, in); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Recorded %s entry\n", in.Category())
	return nil
}
