// Package cli implements the liftitctl command line client. Each invocation
// runs one subcommand against the configured store; the session persists in
// the store between invocations.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"liftit/internal/app"
	"liftit/internal/domain"
)

// ErrUsage reports a malformed command line.
var ErrUsage = errors.New("usage error")

type command struct {
	usage string
	run   func(a *App, ctx context.Context, args []string) error
}

// commands maps subcommand names to their handlers.
func commands() map[string]command {
	return map[string]command{
		"register":  {"register -email E -name N [-weight KG -height CM -age Y -sex S -activity F -goal G]", (*App).register},
		"login":     {"login -email E", (*App).login},
		"logout":    {"logout", (*App).logout},
		"whoami":    {"whoami", (*App).whoami},
		"weight":    {"weight [-unit kg|lb] [-note TEXT] VALUE", (*App).weight},
		"measure":   {"measure [-arm CM] [-chest CM] [-thigh CM]", (*App).measure},
		"workout":   {"workout -type T -duration MIN [-calories KCAL]", (*App).workout},
		"eat":       {"eat [-calories KCAL] [-protein G] [-carbs G] [-fat G]", (*App).eat},
		"profile":   {"profile [-name N -weight KG -height CM -age Y -sex S -activity F -goal G -units U -theme T -notifications B]", (*App).profile},
		"goals":     {"goals [-target-weight KG] [-target-protein G] [-sessions N]", (*App).goals},
		"stats":     {"stats", (*App).stats},
		"macros":    {"macros", (*App).macros},
		"chart":     {"chart [-days N] weight|protein|workout", (*App).chart},
		"dashboard": {"dashboard", (*App).dashboard},
	}
}

// App runs subcommands against the user store.
type App struct {
	users   *app.UserStore
	metrics *app.MetricsService
	in      *bufio.Reader
	out     io.Writer
}

// NewApp creates an App reading prompts from in and writing results to out.
func NewApp(users *app.UserStore, metrics *app.MetricsService, in io.Reader, out io.Writer) *App {
	return &App{users: users, metrics: metrics, in: bufio.NewReader(in), out: out}
}

// Run executes the subcommand named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.usage()
		if len(args) == 0 {
			return ErrUsage
		}
		return nil
	}

	cmd, ok := commands()[args[0]]
	if !ok {
		a.usage()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	return cmd.run(a, ctx, args[1:])
}

func (a *App) usage() {
	table := commands()
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, "Usage: liftitctl <command> [flags]")
	fmt.Fprintln(a.out)
	for _, name := range names {
		fmt.Fprintln(a.out, "  "+table[name].usage)
	}
}

// parseArgs parses flags that may appear before or after positional
// arguments and returns the positionals.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUsage, err)
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
}

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	fs.Usage = func() {
		fmt.Fprintln(a.out, "Usage: liftitctl "+commands()[name].usage)
	}
	return fs
}

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func (a *App) print(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(b))
	return err
}

// currentUser resolves the session or explains how to start one.
func (a *App) currentUser(ctx context.Context) (*domain.User, error) {
	u, err := a.users.CurrentUser(ctx)
	if errors.Is(err, app.ErrNoSession) {
		return nil, fmt.Errorf("%w; run 'liftitctl login'", err)
	}
	return u, err
}

func noArgs(name string, positional []string) error {
	if len(positional) > 0 {
		return fmt.Errorf("%w: %s takes no arguments, got %s", ErrUsage, name, strings.Join(positional, " "))
	}
	return nil
}
