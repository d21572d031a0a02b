// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"runtime/pprof"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spezifisch/stpod/logger"
	"github.com/spezifisch/stpod/mpvplayer"
	"github.com/spezifisch/stpod/player"
	"github.com/spezifisch/stpod/remote"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var osExit = os.Exit  // A variable to allow mocking os.Exit in tests
var headlessMode bool // This can be set to true during tests
var testMode bool     // This can be set to true during tests, too

// appFs is where config, catalog and log files live; tests swap in a MemMapFs.
var appFs afero.Fs = afero.NewOsFs()

const DEVELOPMENT = "development"

// APIVersion is the OpenSubsonic API version we talk, communicated to the server
const APIVersion = "1.8.0"

// Name is the client name we tell the server
var Name string = "stpod"

// Version is the program version; usually set from BuildInfo
var Version string = DEVELOPMENT

type options struct {
	configFile string
	list       bool
	cpuprofile string
	memprofile string
}

func version() string {
	if Version == DEVELOPMENT {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
			return bi.Main.Version
		}
	}
	return Version
}

func newRootCommand() *cobra.Command {
	var opts options
	v := newConfigViper(appFs)

	cmd := &cobra.Command{
		Use:           "stpod [flags] [catalog-file | http[s]://[user:pass@]server:port]",
		Short:         "Terminal podcast player",
		Version:       version(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlayer(cmd.OutOrStdout(), v, opts, args)
		},
	}
	cmd.SetVersionTemplate("stpod {{.Version}}\n")

	flags := cmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "use config `file`")
	flags.String("catalog", "", "episode catalog `file` (toml, yaml or json)")
	flags.Bool("mpris", false, "Enable MPRIS2")
	flags.String("log-file", "", "write a JSON log to `file`")
	flags.BoolVar(&opts.list, "list", false, "list the episodes and exit")
	flags.StringVar(&opts.cpuprofile, "cpuprofile", "", "write cpu profile to `file`")
	flags.StringVar(&opts.memprofile, "memprofile", "", "write memory profile to `file`")

	_ = v.BindPFlag("catalog", flags.Lookup("catalog"))
	_ = v.BindPFlag("mpris", flags.Lookup("mpris"))
	_ = v.BindPFlag("log.file", flags.Lookup("log-file"))

	return cmd
}

// run executes the command line and returns the exit code:
// 0 - OK
// 1 - generic errors
// 2 - config errors
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "stpod: %v\n", err)
		if errors.Is(err, errConfig) {
			return 2
		}
		return 1
	}
	return 0
}

func main() {
	osExit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func runPlayer(out io.Writer, v *viper.Viper, opts options, args []string) error {
	_ = godotenv.Load()

	// cpu/memprofile code straight from https://pkg.go.dev/runtime/pprof
	if opts.cpuprofile != "" {
		f, err := os.Create(opts.cpuprofile)
		if err != nil {
			return errors.Wrap(err, "could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return errors.Wrap(err, "could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	// config gathering
	if len(args) > 0 {
		if err := applySourceArg(v, args[0]); err != nil {
			return err
		}
	}
	cfg, err := readConfig(v, opts.configFile)
	if err != nil {
		return err
	}

	logger := logger.Init()
	if cfg.Log.File != "" {
		f, err := appFs.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return errors.Mark(errors.Wrap(err, "open log file"), errConfig)
		}
		defer f.Close()
		level, err := zerolog.ParseLevel(cfg.Log.Level)
		if err != nil {
			level = zerolog.InfoLevel
		}
		logger.SetSink(f, level)
	}

	catalog, err := loadCatalog(cfg, appFs, logger)
	if err != nil {
		return errors.Wrap(err, "load catalog")
	}

	if opts.list {
		fmt.Fprintln(out, renderCatalogTable(catalog))
		return nil
	}

	// init mpv engine
	media, err := mpvplayer.NewPlayer(logger)
	if err != nil {
		return errors.Wrap(err, "unable to initialize mpv, is mpv installed?")
	}

	if testMode {
		fmt.Fprintln(out, "Running in test mode for testing.")
		return nil
	}
	if headlessMode {
		fmt.Fprintln(out, "Running in headless mode for testing.")
		return nil
	}

	if fd := os.Stdout.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return errors.New("stdout is not a terminal; use --list for plain output")
	}

	release, err := acquireInstanceLock(instanceLockPath())
	if err != nil {
		return err
	}
	defer release()

	controls := player.NewAutoHide(player.SystemClock{}, cfg.Player.HideDelay())
	controller := player.NewController(logger, controls)

	ui := InitGui(catalog, cfg, controller, media, logger, nil)

	// init mpris2 player control (linux only but fails gracefully on other systems)
	if cfg.Mpris {
		mprisPlayer, err := remote.RegisterMprisPlayer(controller, ui, logger)
		if err != nil {
			return errors.Wrap(err, "unable to register MPRIS with DBUS, try running without MPRIS")
		}
		defer mprisPlayer.Close()
		ui.mprisPlayer = mprisPlayer
	}

	// run main loop
	if err := ui.Run(); err != nil {
		return errors.Wrap(err, "ui")
	}

	if opts.memprofile != "" {
		f, err := os.Create(opts.memprofile)
		if err != nil {
			return errors.Wrap(err, "could not create memory profile")
		}
		defer f.Close()
		runtime.GC() // get up-to-date statistics
		if err := pprof.WriteHeapProfile(f); err != nil {
			return errors.Wrap(err, "could not write memory profile")
		}
	}
	return nil
}
