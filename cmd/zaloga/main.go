package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/erazemk/zaloga/internal/config"
)

const usage = `Usage: zaloga [command] [flags]

Commands:
  serve     run the HTTP API (default)
  reset     replace the organizations document with an empty one
  export    write the organizations document as JSON

Flags:
  -b, -backend <name>     storage backend: sqlite, file or memory (default: sqlite)
  -d, -db <path>          SQLite database path (default: zaloga.sqlite3)
      -data <dir>         file backend directory (default: zaloga-data)
  -a, -addr <host:port>   listen address (default: :8080)
  -u, -user <name>        operator username on first run (default: Admin)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
      -metrics            serve Prometheus metrics at /metrics (default: true)
      -confirm            required by reset
  -o, -out <path>         export destination (default: stdout)
  -h, -help               show this help and exit

Every flag can also be set through the environment (ZALOGA_BACKEND,
ZALOGA_DB, ZALOGA_DATA_DIR, ZALOGA_ADDR, ZALOGA_USER, ZALOGA_LOG,
ZALOGA_METRICS) or a .env file.
`

// options are the parsed command line.
type options struct {
	config.Config
	confirm bool
	out     string
}

func parseFlags(name string, args []string, cfg config.Config) (options, error) {
	fs := flag.NewFlagSet("zaloga "+name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	opts := options{Config: cfg}
	fs.StringVar(&opts.Backend, "backend", cfg.Backend, "")
	fs.StringVar(&opts.Backend, "b", cfg.Backend, "")
	fs.StringVar(&opts.DBPath, "db", cfg.DBPath, "")
	fs.StringVar(&opts.DBPath, "d", cfg.DBPath, "")
	fs.StringVar(&opts.DataDir, "data", cfg.DataDir, "")
	fs.StringVar(&opts.Addr, "addr", cfg.Addr, "")
	fs.StringVar(&opts.Addr, "a", cfg.Addr, "")
	fs.StringVar(&opts.AdminUser, "user", cfg.AdminUser, "")
	fs.StringVar(&opts.AdminUser, "u", cfg.AdminUser, "")
	fs.StringVar(&opts.LogPath, "log", cfg.LogPath, "")
	fs.StringVar(&opts.LogPath, "l", cfg.LogPath, "")
	fs.BoolVar(&opts.MetricsEnabled, "metrics", cfg.MetricsEnabled, "")
	fs.BoolVar(&opts.confirm, "confirm", false, "")
	fs.StringVar(&opts.out, "out", "", "")
	fs.StringVar(&opts.out, "o", "", "")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	return opts, opts.Validate()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	command := "serve"
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		command, args = args[0], args[1:]
	}

	var cmd func(options) error
	switch command {
	case "serve":
		cmd = cmdServe
	case "reset":
		cmd = cmdReset
	case "export":
		cmd = cmdExport
	case "help":
		fmt.Fprint(os.Stdout, usage)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n%s", command, usage)
		return 1
	}

	opts, err := parseFlags(command, args, config.Load())
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprint(os.Stdout, usage)
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n\n%s", err, usage)
		return 1
	}

	// INFO/WARN go to stdout, ERROR to stderr, optionally also to a file.
	closeLog, err := setupLogger(opts.LogPath, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer closeLog()

	if err := cmd(opts); err != nil {
		slog.Error(command+" failed", "error", err)
		return 1
	}
	return 0
}
