package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"strconv"

	"github.com/vacay/resonator/config"
	"github.com/vacay/resonator/errors"
	"github.com/vacay/resonator/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/google/subcommands"
)

type migrateCmd struct {
	// command line flags
	flags   *flag.FlagSet
	verbose bool

	migrate *migrate.Migrate
}

func (m migrateCmd) Name() string {
	return "migrate"
}

func (m migrateCmd) Synopsis() string {
	return "migrate allows you to handle database migrations"
}

func (m migrateCmd) Usage() string {
	return "migrate"
}

func (m *migrateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&m.verbose, "verbose", false, "verbose output")
}

func (m *migrateCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	m.flags = f
	defer func() {
		if m.migrate != nil {
			m.migrate.Close()
		}
	}()

	cmder := subcommands.NewCommander(f, path.Base(os.Args[0])+" migrate")
	cmder.Register(cmder.HelpCommand(), "")
	cmder.Register(cmder.CommandsCommand(), "")
	cmder.Register(cmd{
		name:     "version",
		synopsis: "return the current schema version",
		usage: `version:
		return the current schema version
		`,
		execute: withConfig(m.version),
	}, "")
	cmder.Register(cmd{
		name:     "up",
		synopsis: "migrate the schema version up",
		usage: `up:
		migrate the schema version up
		`,
		execute: withConfig(m.up),
	}, "")
	cmder.Register(cmd{
		name:     "down",
		synopsis: "migrate the schema version down",
		usage: `down:
		migrate the schema version down
		`,
		execute: withConfig(m.down),
	}, "")
	cmder.Register(cmd{
		name:     "force",
		synopsis: "set the current version of the schema, this does not run any migrations",
		usage: `force <version>:
		set the current version of the schema, this does not run any migrations but only
		records what version the schema currently is
		`,
		execute: withConfig(m.forceVersion),
	}, "")

	return cmder.Execute(ctx, args...)
}

func (m *migrateCmd) up(ctx context.Context, cfg config.Config) error {
	if err := m.setup(ctx, cfg); err != nil {
		return err
	}

	err := m.migrate.Up()
	if err == migrate.ErrNoChange {
		fmt.Println("schema already up to date")
		return nil
	}
	return err
}

func (m *migrateCmd) down(ctx context.Context, cfg config.Config) error {
	if err := m.setup(ctx, cfg); err != nil {
		return err
	}

	return m.migrate.Steps(-1)
}

func (m *migrateCmd) forceVersion(ctx context.Context, cfg config.Config) error {
	if err := m.setup(ctx, cfg); err != nil {
		return err
	}

	args := m.flags.Args()
	if len(args) < 2 {
		return errors.E("missing version argument")
	}

	version, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.E(errors.InvalidArgument, err)
	}

	return m.migrate.Force(version)
}

func (m *migrateCmd) version(ctx context.Context, cfg config.Config) error {
	if err := m.setup(ctx, cfg); err != nil {
		return err
	}

	v, d, err := m.migrate.Version()
	if err != nil {
		return err
	}

	state := "done"
	if d {
		state = "dirty"
	}

	fmt.Printf("version: %d, state: %s\n", v, state)
	return nil
}

func (m *migrateCmd) setup(ctx context.Context, cfg config.Config) error {
	migr, err := migrations.New(ctx, cfg)
	if err != nil {
		return err
	}

	if m.verbose {
		migr.Log = migrateLog{log.New(os.Stderr, "", log.LstdFlags)}
	}
	m.migrate = migr
	return nil
}

type migrateLog struct {
	*log.Logger
}

func (ml migrateLog) Verbose() bool {
	return true
}
