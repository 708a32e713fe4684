package cli

import (
	"context"
	"flag"
	"fmt"

	"liftit/internal/app"
	"liftit/internal/domain"
)

// profileFlags binds the profile fields shared by register and profile.
type profileFlags struct {
	weight, height, activity float64
	age                      int
	sex, goal                string
}

func (p *profileFlags) bind(fs *flag.FlagSet) {
	fs.Float64Var(&p.weight, "weight", 0, "body weight in kg")
	fs.Float64Var(&p.height, "height", 0, "height in cm")
	fs.IntVar(&p.age, "age", 0, "age in years")
	fs.StringVar(&p.sex, "sex", "", "male or female")
	fs.Float64Var(&p.activity, "activity", 0, "activity multiplier, e.g. 1.375")
	fs.StringVar(&p.goal, "goal", "", "bulk, cut or maintain")
}

// patch returns a ProfilePatch holding only the flags that were given.
func (p *profileFlags) patch(set map[string]bool) (domain.ProfilePatch, error) {
	var pp domain.ProfilePatch
	if set["weight"] {
		pp.Weight = &p.weight
	}
	if set["height"] {
		pp.Height = &p.height
	}
	if set["age"] {
		pp.Age = &p.age
	}
	if set["sex"] {
		sex := domain.Sex(p.sex)
		pp.Sex = &sex
	}
	if set["activity"] {
		pp.Activity = &p.activity
	}
	if set["goal"] {
		goal := domain.Goal(p.goal)
		switch goal {
		case domain.GoalBulk, domain.GoalCut, domain.GoalMaintain:
		default:
			return pp, fmt.Errorf("%w: goal must be bulk, cut or maintain", ErrUsage)
		}
		pp.Goal = &goal
	}
	return pp, nil
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := a.newFlagSet("register")
	email := fs.String("email", "", "account email")
	name := fs.String("name", "", "display name")
	var pf profileFlags
	pf.bind(fs)
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := noArgs("register", positional); err != nil {
		return err
	}

	profile, err := pf.patch(setFlags(fs))
	if err != nil {
		return err
	}

	password, err := a.getPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := a.getPassword("Repeat password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("%w: passwords do not match", app.ErrValidation)
	}

	u, err := a.users.Register(ctx, app.Registration{
		Email:    *email,
		Password: password,
		Name:     *name,
		Profile:  profile,
	})
	if err != nil {
		return err
	}
	return a.print(u.Public())
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.newFlagSet("login")
	email := fs.String("email", "", "account email")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := noArgs("login", positional); err != nil {
		return err
	}

	password, err := a.getPassword("Password: ")
	if err != nil {
		return err
	}
	u, err := a.users.Login(ctx, *email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", u.Name)
	return nil
}

func (a *App) logout(ctx context.Context, args []string) error {
	if err := noArgs("logout", args); err != nil {
		return err
	}
	if err := a.users.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) whoami(ctx context.Context, args []string) error {
	if err := noArgs("whoami", args); err != nil {
		return err
	}
	u, err := a.currentUser(ctx)
	if err != nil {
		return err
	}
	return a.print(u.Public())
}

func (a *App) profile(ctx context.Context, args []string) error {
	fs := a.newFlagSet("profile")
	name := fs.String("name", "", "display name")
	units := fs.String("units", "", "metric or imperial")
	theme := fs.String("theme", "", "dark or light")
	notifications := fs.Bool("notifications", true, "enable notifications")
	var pf profileFlags
	pf.bind(fs)
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := noArgs("profile", positional); err != nil {
		return err
	}

	u, err := a.currentUser(ctx)
	if err != nil {
		return err
	}

	set := setFlags(fs)
	profile, err := pf.patch(set)
	if err != nil {
		return err
	}
	patch := domain.UserPatch{Profile: &profile}
	if set["name"] {
		patch.Name = name
	}
	var settings domain.SettingsPatch
	if set["units"] {
		if *units != "metric" && *units != "imperial" {
			return fmt.Errorf("%w: units must be metric or imperial", ErrUsage)
		}
		settings.Units = units
	}
	if set["theme"] {
		settings.Theme = theme
	}
	if set["notifications"] {
		settings.Notifications = notifications
	}
	patch.Settings = &settings

	u, err = a.users.UpdateUser(ctx, u.ID, patch)
	if err != nil {
		return err
	}
	return a.print(u.Public())
}

func (a *App) goals(ctx context.Context, args []string) error {
	fs := a.newFlagSet("goals")
	targetWeight := fs.Float64("target-weight", 0, "target body weight in kg")
	targetProtein := fs.Float64("target-protein", 0, "daily protein target in g")
	sessions := fs.Int("sessions", 0, "workout sessions per week")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := noArgs("goals", positional); err != nil {
		return err
	}

	u, err := a.currentUser(ctx)
	if err != nil {
		return err
	}

	set := setFlags(fs)
	var patch domain.GoalsPatch
	if set["target-weight"] {
		patch.TargetWeight = targetWeight
	}
	if set["target-protein"] {
		patch.TargetProtein = targetProtein
	}
	if set["sessions"] {
		patch.SessionsPerWeek = sessions
	}

	u, err = a.users.UpdateGoals(ctx, u.ID, patch)
	if err != nil {
		return err
	}
	return a.print(u.Goals)
}
