// Package main is the entry point for the easel editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/easelkit/easel/internal/config"
	"github.com/easelkit/easel/internal/history"
	"github.com/easelkit/easel/internal/host/desktop"
	"github.com/easelkit/easel/internal/host/terminal"
	"github.com/easelkit/easel/internal/logging"
	"github.com/easelkit/easel/internal/scene"
	"github.com/easelkit/easel/internal/style"
	"github.com/easelkit/easel/internal/tool"
	"github.com/easelkit/easel/internal/tool/script"
	"github.com/easelkit/easel/internal/tool/tools"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	ConfigPath string
	ScriptDir  string
	Host       string
	LogLevel   string
	Debug      bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()
	setupLogging(opts)

	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	// Session state. The manager only references these; the host owns
	// their lifetime.
	doc := scene.NewDocument()
	sel := scene.NewSelection()
	vp := scene.NewViewport()
	grid := scene.NewGrid(cfg.GridSpacing)
	his := history.NewHistory(cfg.HistoryLimit)

	mgr := tool.NewManager()
	mgr.SetDocument(doc)
	mgr.SetSelection(sel)
	mgr.SetViewport(vp)
	mgr.SetGrid(grid)
	mgr.SetHistory(his)

	mgr.Register(tools.NewSelect(mgr, sel))
	mgr.Register(tools.NewPan(mgr, vp))
	mgr.Register(tools.NewRect(mgr))
	mgr.Register(tools.NewEllipse(mgr))

	scripted, err := loadScripts(mgr, opts.ScriptDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load scripts: %v\n", err)
		return 1
	}
	defer func() {
		for _, t := range scripted {
			t.Close()
		}
	}()

	config.Apply(cfg, mgr, grid)

	theme := style.DefaultTheme()

	switch opts.Host {
	case "terminal":
		host, err := terminal.New(mgr, doc, sel, vp, theme)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
			return 1
		}
		if err := host.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to init terminal: %v\n", err)
			return 1
		}
		if err := host.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	case "desktop":
		desktop.Run(mgr, doc, sel, vp, theme, desktop.Options{Title: "easel"})
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown host %q (must be desktop or terminal)\n", opts.Host)
		return 1
	}

	return 0
}

// loadScripts registers every .lua tool found in dir. A missing or
// empty dir is not an error; a broken script is.
func loadScripts(mgr *tool.Manager, dir string) ([]*script.Tool, error) {
	if dir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	loaded := make([]*script.Tool, 0, len(names))
	for _, name := range names {
		t, err := script.Load(mgr, filepath.Join(dir, name))
		if err != nil {
			for _, l := range loaded {
				l.Close()
			}
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
		mgr.Register(t)
		loaded = append(loaded, t)
	}
	return loaded, nil
}

func setupLogging(opts options) {
	if !opts.Debug && opts.LogLevel == "" {
		return
	}

	level := slog.LevelInfo
	switch opts.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if opts.Debug {
		level = slog.LevelDebug
	}

	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.json, .yaml)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.ScriptDir, "scripts", "", "Directory of Lua tool scripts to load")
	flag.StringVar(&opts.Host, "host", "desktop", "Host surface: desktop or terminal")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); empty disables logging")
	flag.BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Easel - interactive canvas editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: easel [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  easel                       Open a desktop window\n")
		fmt.Fprintf(os.Stderr, "  easel -host terminal        Run in the terminal\n")
		fmt.Fprintf(os.Stderr, "  easel -c easel.yaml         Load settings\n")
		fmt.Fprintf(os.Stderr, "  easel -scripts ./tools      Load Lua tools\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Easel %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	return opts
}
