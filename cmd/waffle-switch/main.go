// Command waffle-switch lists and toggles the waffle switches stored in the
// plugin database.
//
//	waffle-switch [-create] [-note text] <name> on|off
//	waffle-switch -list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	sqliteadapter "github.com/ericfisherdev/openedx-plugin/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/openedx-plugin/internal/config"
	"github.com/ericfisherdev/openedx-plugin/internal/domain/port/driven"
)

var (
	errUsage         = errors.New("usage: waffle-switch [-create] [-note text] <name> on|off | waffle-switch -list")
	errSwitchMissing = errors.New("switch does not exist (use -create)")
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		slog.Error("waffle-switch failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()

	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}

	return execute(ctx, sqliteadapter.NewWaffleSwitchRepo(db), args, out)
}

// execute parses args and applies them to store.
func execute(ctx context.Context, store driven.SwitchStore, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("waffle-switch", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	list := fs.Bool("list", false, "list all switches")
	create := fs.Bool("create", false, "create the switch if it does not exist")
	note := fs.String("note", "", "note stored with the switch")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	if *list {
		return listSwitches(ctx, store, out)
	}

	if fs.NArg() != 2 {
		return errUsage
	}
	name, state := fs.Arg(0), fs.Arg(1)

	var active bool
	switch state {
	case "on":
		active = true
	case "off":
		active = false
	default:
		return fmt.Errorf("%w: state must be on or off, got %q", errUsage, state)
	}

	if !*create {
		exists, err := switchExists(ctx, store, name)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%q: %w", name, errSwitchMissing)
		}
	}

	if err := store.Set(ctx, name, active, *note); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "%s: %s\n", name, state)
	return err
}

func listSwitches(ctx context.Context, store driven.SwitchStore, out io.Writer) error {
	all, err := store.ListAll(ctx)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(out, "Switches:"); err != nil {
		return err
	}
	for _, sw := range all {
		state := "off"
		if sw.Active {
			state = "on"
		}
		if _, err := fmt.Fprintf(out, "%s: %s\n", sw.Name, state); err != nil {
			return err
		}
	}
	return nil
}

func switchExists(ctx context.Context, store driven.SwitchStore, name string) (bool, error) {
	all, err := store.ListAll(ctx)
	if err != nil {
		return false, err
	}
	for _, sw := range all {
		if sw.Name == name {
			return true, nil
		}
	}
	return false, nil
}
