// goosint investigates Gmail addresses with GHunt and records what it finds.
//
// Usage:
//
//	goosint -e target@gmail.com
//	goosint -f email_list.txt
//	goosint --setup
//
// Each run writes one JSON session file to the results folder.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/dkoosis/goosint/internal/config"
	"github.com/dkoosis/goosint/internal/console"
	"github.com/dkoosis/goosint/internal/ghunt"
	"github.com/dkoosis/goosint/internal/investigate"
	"github.com/dkoosis/goosint/internal/logging"
	"github.com/dkoosis/goosint/internal/progress"
	"github.com/dkoosis/goosint/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	email    string
	file     string
	setup    bool
	install  bool
	noBanner bool
	help     bool
	version  bool
	flags    config.CliFlags
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := pflag.NewFlagSet("goosint", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {}
	fs.SortFlags = false

	fs.StringVarP(&o.email, "email", "e", "", "Investigate a single email address")
	fs.StringVarP(&o.file, "file", "f", "", "Batch investigate emails from file")
	fs.BoolVarP(&o.setup, "setup", "s", false, "Setup GHunt authentication")
	fs.BoolVarP(&o.install, "install", "i", false, "Install/reinstall GHunt")
	fs.BoolVar(&o.noBanner, "no-banner", false, "Skip banner display")
	fs.BoolVar(&o.flags.NoColor, "no-color", false, "Disable colors")
	fs.StringVar(&o.flags.ResultsDir, "results-dir", "", "Folder for result files")
	fs.DurationVar(&o.flags.Timeout, "timeout", 0, "Per-email GHunt timeout")
	fs.StringVar(&o.flags.ConfigPath, "config", "", "Read configuration from `path`")
	fs.BoolVar(&o.flags.Debug, "debug", false, "Log diagnostics to stderr")
	fs.BoolVar(&o.version, "version", false, "Print version and exit")
	fs.BoolVarP(&o.help, "help", "h", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	o.flags.ResultsDirSet = fs.Changed("results-dir")
	o.flags.TimeoutSet = fs.Changed("timeout")
	o.flags.NoColorSet = fs.Changed("no-color")
	o.flags.DebugSet = fs.Changed("debug")
	return o, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "goosint: %v\n", err)
		fmt.Fprintln(stderr, "Run 'goosint --help' for usage.")
		return 2
	}
	if opts.version {
		fmt.Fprintln(stdout, version.String())
		return 0
	}

	cfg := config.Resolve(opts.flags)
	logging.Init(logging.Options{Level: cfg.LogLevel(), Format: cfg.LogFormat, Writer: stderr})
	defer logging.Sync()
	log := logging.New("cli")
	for _, w := range cfg.Warnings {
		log.Warn("config", zap.String("warning", w))
	}
	if cfg.Source != "" {
		log.Debug("config loaded", zap.String("path", cfg.Source))
	}

	r := console.NewRenderer(stdout, cfg.NoColor)
	con := console.New(stdout, console.ThemeByName(r, cfg.Theme), console.TerminalWidth(stdout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !opts.noBanner {
		con.Banner(version.Version)
	}

	a := &app{
		cfg:   cfg,
		con:   con,
		stdin: stdin,
		log:   log,
		tool: &ghunt.Tool{
			Path:      cfg.GHuntPath,
			Args:      cfg.GHuntArgs,
			Python:    cfg.PythonPath,
			MaxOutput: cfg.MaxOutput,
			Log:       logging.New("ghunt"),
			Stdin:     stdin,
			Stdout:    stdout,
			Stderr:    stderr,
		},
		progress: progress.None{},
	}
	if console.IsTerminal(stdout) && !cfg.NoColor {
		a.progress = progress.Spinner{Out: stdout, Style: con.Theme().Yellow}
	}

	err = a.dispatch(ctx, opts)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		con.Blank()
		con.Blank()
		con.Warn("Investigation interrupted by user")
		return 0
	default:
		log.Error("run failed", zap.Error(err))
		con.Blank()
		con.Failure("Unexpected error: " + err.Error())
		return 1
	}
}

type app struct {
	cfg      *config.Config
	con      *console.Console
	tool     *ghunt.Tool
	progress progress.Indicator
	stdin    io.Reader
	log      *zap.Logger
}

// dispatch runs the first requested action: install, setup, email, file,
// otherwise help.
func (a *app) dispatch(ctx context.Context, o options) error {
	switch {
	case o.help:
		a.con.Help()
		return nil
	case o.install:
		_, err := a.install(ctx)
		return err
	case o.setup:
		return a.setup(ctx)
	case o.email == "" && o.file == "":
		a.con.Help()
		return nil
	}

	ready, err := a.ensureInstalled(ctx)
	if err != nil || !ready {
		return err
	}

	inv := investigate.New(a.tool, a.con, investigate.Options{
		Timeout:     a.cfg.Timeout,
		ResultsDir:  a.cfg.ResultsDir,
		ToolVersion: version.Version,
		Progress:    a.progress,
		Log:         logging.New("investigate"),
	})
	if o.email != "" {
		if !investigate.ValidEmail(o.email) {
			a.con.Failure("Invalid email format: " + o.email)
			return nil
		}
		return inv.Single(ctx, o.email)
	}
	return inv.Batch(ctx, o.file)
}

// install reports whether GHunt was installed. Install failures are printed
// and are not errors; only an interrupt is.
func (a *app) install(ctx context.Context) (bool, error) {
	a.con.Warn("Installing GHunt...")
	err := a.tool.Install(ctx)
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		a.con.Failure("Failed to install GHunt: " + err.Error())
		return false, nil
	}
	a.con.Success("GHunt installed successfully")
	a.con.Warn("Run 'goosint --setup' to configure authentication")
	return true, nil
}

func (a *app) setup(ctx context.Context) error {
	a.con.SetupStart()
	err := a.tool.Login(ctx, a.cfg.SetupTimeout)
	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, ghunt.ErrTimeout):
		a.con.Failure("Setup process timed out")
	case err != nil:
		a.con.Failure("Error during setup: " + err.Error())
	default:
		a.con.Success("GHunt setup completed")
	}
	return nil
}

// ensureInstalled checks for GHunt and offers to install it when missing.
// A fresh install still needs --setup, so it reports not ready.
func (a *app) ensureInstalled(ctx context.Context) (bool, error) {
	if a.tool.Installed() {
		a.con.Success("GHunt is installed and ready")
		return true, nil
	}
	a.con.Failure("GHunt not found")
	yes, err := a.con.Prompt(ctx, a.stdin, "Would you like to install it now? (y/n)")
	if err != nil {
		return false, err
	}
	if !yes {
		a.con.Warn("GHunt is required for this tool to work")
		return false, nil
	}
	_, err = a.install(ctx)
	return false, err
}
