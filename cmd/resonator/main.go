// resonator is the acoustic fingerprint service, its subcommands run the
// HTTP API, the vitamin ingest worker and the database tooling.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"sync"
	"syscall"

	"github.com/vacay/resonator/config"
	"github.com/vacay/resonator/jobs"
	_ "github.com/vacay/resonator/storage/mariadb" // mariadb storage interface
	"github.com/vacay/resonator/util"
	"github.com/vacay/resonator/website"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

type executeFn func(context.Context, config.Loader) error

type executeConfigFn func(context.Context, config.Config) error

type cmd struct {
	name      string
	synopsis  string
	usage     string
	setFlags  func(*flag.FlagSet)
	execute   executeFn
	noSIGUSR2 bool
}

func (c cmd) Name() string     { return c.name }
func (c cmd) Synopsis() string { return c.synopsis }
func (c cmd) Usage() string    { return c.usage }
func (c cmd) SetFlags(f *flag.FlagSet) {
	if c.setFlags != nil {
		c.setFlags(f)
	}
}
func (c cmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	// extract extra arguments from the interface slice; it's fine if we panic here
	// because that is an unrecoverable programmer error
	errCh := args[0].(chan error)

	// add the subcommand name to the logging
	zerolog.Ctx(ctx).UpdateContext(func(zc zerolog.Context) zerolog.Context {
		return zc.Str("service", c.name)
	})

	loader := func() (config.Config, error) {
		return config.LoadFile(configFile, configEnvFile)
	}

	// setup handling of SIGUSR2 (our restart signal)
	if !c.noSIGUSR2 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		go func() {
			select {
			case <-ctx.Done():
			case <-util.Signal(syscall.SIGUSR2):
			}
			cancel()
		}()
	}

	errCh <- c.execute(ctx, loader)
	return subcommands.ExitSuccess
}

// withConfig turns an executeConfigFn into an executeFn
func withConfig(fn executeConfigFn) executeFn {
	return func(ctx context.Context, l config.Loader) error {
		cfg, err := l()
		if err != nil {
			return err
		}
		return fn(ctx, cfg)
	}
}

var versionCmd = cmd{
	name:     "version",
	synopsis: "display version information of executable",
	usage: `version:
	display version information of executable`,
	execute: printVersion,
}

var CommitHash = sync.OnceValue[string](func() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				return setting.Value
			}
		}
	}
	return "(devel)"
})

func printVersion(context.Context, config.Loader) error {
	if info, ok := debug.ReadBuildInfo(); ok {
		fmt.Printf("%s %s\n", info.Path, CommitHash())
		for _, mod := range info.Deps {
			fmt.Printf("\t%s %s\n", mod.Path, mod.Version)
		}
	} else {
		fmt.Printf("%s %s\n", "resonator", "(devel)")
	}
	return nil
}

var configCmd = cmd{
	name:     "config",
	synopsis: "display current configuration",
	usage: `config:
	display current configuration
	`,
	execute: printConfig,
}

func printConfig(_ context.Context, l config.Loader) error {
	// try and load the configuration, but otherwise just print the defaults
	cfg, _ := l()
	return cfg.Save(os.Stdout)
}

var serverCmd = cmd{
	name:     "server",
	synopsis: "runs the fingerprint HTTP API",
	usage: `server:
	runs the fingerprint HTTP API
	`,
	execute:   withConfig(website.Execute),
	noSIGUSR2: true,
}

var workerCmd = cmd{
	name:     "worker",
	synopsis: "runs the vitamin ingest worker",
	usage: `worker:
	runs the vitamin ingest worker
	`,
	execute: withConfig(jobs.ExecuteVitaminWorker),
}

// configEnvFile will be resolved to the environment variable given here
var configEnvFile = "RESONATOR_CONFIG"

// configFile will be filled with the -config flag value
var configFile string

// logLevel will be filled with the -loglevel flag value
var logLevel string

func main() {
	// setup configuration file as top-level flag
	flag.StringVar(&configFile, "config", "resonator.toml", "filepath to configuration file")
	flag.StringVar(&logLevel, "loglevel", "info", "loglevel to use")

	// add all our top-level flags as important flags to subcommands
	flag.VisitAll(func(f *flag.Flag) {
		subcommands.ImportantFlag(f.Name)
	})
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(versionCmd, "")
	subcommands.Register(configCmd, "")
	subcommands.Register(serverCmd, "")
	subcommands.Register(workerCmd, "")
	subcommands.Register(&migrateCmd{}, "migrate")

	flag.Parse()
	configEnvFile = os.Getenv(configEnvFile)

	// exit code passed to os.Exit
	var code int

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		logger.Error().Err(err).Msg("failed to parse loglevel flag")
		os.Exit(1)
	}
	logger = logger.Level(level)

	// setup root context
	ctx := context.Background()
	ctx = logger.WithContext(ctx)

	// we only wait on this channel if a nil error is returned by
	// executeCommand; because if it is a non-nil error we know our
	// cmd.Execute finished running, otherwise we have to wait for it to
	// finish so it has the chance to clean up resources
	errCh := make(chan error, 1)

	err = executeCommand(ctx, errCh)
	if err == nil {
		// executeCommand only returns nil when a signal asked us to stop
		// running, the command has already been told to shutdown and we
		// wait for it to return
		<-errCh
	} else {
		code = 1
		logger.Error().Err(err).Msg("exit")
	}

	os.Exit(code)
}

// executeCommand runs subcommands.Execute and handles OS signals
//
// if someone is asking us to shutdown by sending us a SIGINT executeCommand
// should (and does) return a nil error. Otherwise it should return the error
// given by subcommands.Execute
func executeCommand(ctx context.Context, errCh chan error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	signalCh := make(chan os.Signal, 2)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGHUP)

	// run our command in another goroutine so we can do signal handling on
	// the main goroutine
	go func() {
		code := subcommands.Execute(ctx, errCh)
		// send a fake error over the errCh, this is so internal subcommands
		// that don't use our cmd type don't hang the process
		errCh <- exitError(code)
	}()

	select {
	case <-signalCh:
		// signal received, cancel the context to tell the command to
		// shutdown, our caller waits for the actual error return
		cancel()
		return nil
	case err := <-errCh:
		return err
	}
}

// exitError converts a subcommands exit status into an error, nil on success
func exitError(code subcommands.ExitStatus) error {
	if code == subcommands.ExitSuccess {
		return nil
	}
	return fmt.Errorf("exit status: %d", code)
}
