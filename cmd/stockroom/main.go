package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/erazemk/stockroom/internal/config"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	level  slog.Leveler
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= lr.level.Level()
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		level:  lr.level,
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		level:  lr.level,
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. INFO/WARN go to stdout, ERROR goes
// to stderr. If logPath is non-empty, all levels are also written to that file.
// Returns a cleanup function that closes the log file (if opened).
func setupLogger(logPath string, debug bool) (func(), error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		level:  level,
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

const usage = `Usage: stockroom [command] [flags] [args]

Commands:
  serve                   run the web client (default)
  fake-api                run an in-memory inventory service for development
  list                    print every item
  find <name>             look up one item by name
  delete <name>           delete an item after confirmation

Flags:
  -u, -api <url>          inventory service URL (default: %s)
  -a, -addr <host:port>   listen address (default: :8080, fake-api :9090)
  -d, -db <path>          SQLite database path (default: stockroom.sqlite3)
  -t, -timeout <dur>      request timeout (default: %s)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -debug                  enable debug logging
  -y, -yes                delete without asking (delete only)
  -h, -help               show this help and exit

Settings are also read from .env and STOCKROOM_* environment variables.
`

// commands maps each subcommand to its implementation.
var commands = map[string]func(ctx context.Context, cfg config.Config, opts options, args []string) error{
	"serve":    runServe,
	"fake-api": runFakeAPI,
	"list":     runList,
	"find":     runFind,
	"delete":   runDelete,
}

// options are flags that only some commands read.
type options struct {
	yes bool
}

func main() {
	name, args := "serve", os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name, args = args[0], args[1:]
	}
	run, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", name)
		printUsage()
		os.Exit(1)
	}

	base := config.Default()
	if name == "fake-api" {
		base.Addr = config.DefaultFakeAddr
	}
	cfg, err := config.LoadFrom(".env", base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("stockroom "+name, flag.ContinueOnError)
	cfg.RegisterFlags(fs)

	var opts options
	fs.BoolVar(&opts.yes, "yes", false, "")
	fs.BoolVar(&opts.yes, "y", false, "")

	fs.Usage = printUsage

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := setupLogger(cfg.LogPath, cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	if err := run(context.Background(), cfg, opts, fs.Args()); err != nil {
		var uerr usageError
		if errors.As(err, &uerr) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			printUsage()
		} else {
			slog.Error("command failed", "command", name, "error", err)
		}
		if closeLog != nil {
			closeLog()
		}
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stdout, usage, config.Default().APIURL, config.Default().Timeout)
}

// usageError is a problem with the command line itself.
type usageError string

func (e usageError) Error() string { return string(e) }
