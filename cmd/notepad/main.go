// Package main is the entry point for the notepad.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/wenlu-dev/notepad/internal/app"
	"github.com/wenlu-dev/notepad/internal/config"
	"github.com/wenlu-dev/notepad/internal/storage"
	"github.com/wenlu-dev/notepad/internal/ui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type cliOptions struct {
	configPath string
	logLevel   string
	readOnly   bool
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		settings.Logging.Level = opts.logLevel
	}

	logger := app.NullLogger
	level := app.ParseLogLevel(settings.Logging.Level)
	if logFile, err := app.OpenLogFile(); err == nil {
		defer logFile.Close()
		logger = app.NewLogger(logFile, level)
	}
	logger.Info("notepad %s starting", version)

	store, err := storage.Open(storage.DefaultPath())
	if err != nil {
		// The session store is a convenience; run without it.
		logger.Warn("session store unavailable: %v", err)
		store = nil
	} else {
		defer store.Close()
	}

	screen, err := ui.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()

	application, err := app.New(app.Options{
		Settings:  settings,
		ConfigDir: filepath.Dir(configPath),
		Store:     store,
		Screen:    screen,
		Logger:    logger,
		ReadOnly:  opts.readOnly,
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	if opts.file != "" {
		if err := application.Open(opts.file); err != nil {
			logger.Warn("initial open: %v", err)
		}
	} else {
		application.RestoreSession()
	}

	// Reload settings when the config file changes on disk. The watcher
	// goroutine only posts; the event loop applies.
	watcher, err := config.NewWatcher(configPath,
		func(s config.Settings) {
			screen.PostEvent(&ui.ReloadEvent{Settings: s})
		},
		func(err error) {
			logger.Warn("config reload: %v", err)
		})
	if err == nil {
		defer watcher.Close()
	} else {
		logger.Warn("config watcher unavailable: %v", err)
	}

	// Signals quit cleanly through the event queue.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		screen.PostEvent(&ui.QuitEvent{})
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			application.SaveSession()
			return 0
		}
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	application.SaveSession()
	return 0
}

func parseFlags() cliOptions {
	var opts cliOptions
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.readOnly, "readonly", false, "Open the file read-only")
	flag.BoolVar(&opts.readOnly, "R", false, "Open the file read-only (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "notepad - 记事本\n\n")
		fmt.Fprintf(os.Stderr, "Usage: notepad [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("notepad %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if args := flag.Args(); len(args) > 0 {
		opts.file = args[0]
	}
	return opts
}
