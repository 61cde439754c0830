// blogsmith - a terminal client for an AI blog generation backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/blogsmith-tui/internal/api"
	"github.com/jeranaias/blogsmith-tui/internal/cli"
	"github.com/jeranaias/blogsmith-tui/internal/config"
	"github.com/jeranaias/blogsmith-tui/internal/logging"
	"github.com/jeranaias/blogsmith-tui/internal/ui/app"
	"github.com/jeranaias/blogsmith-tui/internal/ui/display"
	"github.com/jeranaias/blogsmith-tui/internal/ui/history"
	"github.com/jeranaias/blogsmith-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run())
}

// run executes one invocation and returns the process exit code.
func run() int {
	cmd, args := cli.Parse()

	// Help and version never need a config or a backend.
	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return cli.ExitSuccess
	case cli.CmdVersion:
		if err := cli.HandleVersion(&cli.Env{Out: os.Stdout, Err: os.Stderr}, args); err != nil {
			return exitWith(err, args)
		}
		return cli.ExitSuccess
	case cli.CmdUnknown:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args.Name)
		cli.PrintUsage(os.Stderr)
		return cli.ExitUsageError
	}

	cfg, err := loadConfig(args)
	if cfg == nil {
		if args.JSON {
			cli.DisplayErrorJSON(os.Stdout, err)
			return cli.GetExitCode(err)
		}
		cli.DisplayError(os.Stderr, err, false)
		return cli.GetExitCode(err)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", cli.WarningStyle.Render("[WARN]"), err)
	}
	config.SetGlobal(cfg)

	closer, err := setupLogging(cmd, args, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", cli.WarningStyle.Render("[WARN]"), err)
		logging.Discard()
	} else if closer != nil {
		defer closer.Close()
	}

	client := api.NewClient(cfg.ClientConfig())
	log.Debug().
		Str("command", cmd.String()).
		Str("base_url", client.BaseURL()).
		Msg("starting")

	if cmd == cli.CmdTUI {
		if err := runTUI(cfg, client); err != nil {
			cli.DisplayError(os.Stderr, err, false)
			return cli.ExitGeneralError
		}
		return cli.ExitSuccess
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := cli.NewEnv(cfg, client)
	out := &countingWriter{w: env.Out}
	env.Out = out
	err = cli.Run(ctx, cmd, args, env)
	if err != nil && args.JSON && out.n == 0 {
		// Failed before the command printed its own envelope.
		cli.DisplayErrorJSON(os.Stdout, err)
		return cli.GetExitCode(err)
	}
	return exitWith(err, args)
}

// countingWriter records whether a command wrote anything to stdout.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}

// loadConfig loads the file, .env and environment, then applies --api-url.
func loadConfig(args cli.Args) (*config.Config, error) {
	cfg, err := config.Load()
	if cfg == nil {
		return nil, err
	}
	if args.APIURL != "" {
		cfg.API.BaseURL = args.APIURL
		if verr := cfg.Validate(); verr != nil {
			return nil, fmt.Errorf("--api-url: %w", verr)
		}
	}
	return cfg, err
}

// setupLogging sends logs to the log file, or to stderr for the mock
// server so requests are visible.
func setupLogging(cmd cli.Command, args cli.Args, cfg *config.Config) (io.Closer, error) {
	if args.Quiet && cmd != cli.CmdTUI {
		logging.Discard()
		return nil, nil
	}
	level := cfg.Logging.Level
	if args.Verbose {
		level = "debug"
	}
	path := cfg.LogPath()
	if cmd == cli.CmdMockServer {
		path = "-"
	}
	return logging.Setup(logging.Options{Level: level, Path: path})
}

func runTUI(cfg *config.Config, client *api.Client) error {
	m := app.New(styles.NewTheme(cfg.UI.Theme), client, app.Options{
		BaseURL: client.BaseURL(),
		Display: display.Options{
			ExportDir:  cfg.ExportDir(),
			AltFormat:  cfg.Export.Format,
			Appearance: cfg.UI.Theme,
			WordWrap:   cfg.UI.WordWrap,
		},
		History: history.Options{
			PreviewLength: cfg.UI.PreviewLength,
			Limit:         cfg.UI.HistoryLimit,
		},
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI: %w", err)
	}
	return nil
}

func exitWith(err error, args cli.Args) int {
	if err == nil {
		return cli.ExitSuccess
	}
	// JSON mode already printed an error envelope.
	if !args.JSON {
		cli.DisplayError(os.Stderr, err, false)
	}
	if code := cli.GetExitCode(err); code != cli.ExitSuccess {
		return code
	}
	return cli.ExitGeneralError
}
