// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdStatus
	CmdList
	CmdShow
	CmdDelete
	CmdExport
	CmdGenerate
	CmdConfig
	CmdMockServer
	CmdVersion
	CmdHelp
	CmdUnknown
)

// String returns the command name as typed on the command line.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdStatus:
		return "status"
	case CmdList:
		return "list"
	case CmdShow:
		return "show"
	case CmdDelete:
		return "delete"
	case CmdExport:
		return "export"
	case CmdGenerate:
		return "generate"
	case CmdConfig:
		return "config"
	case CmdMockServer:
		return "mock-server"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	APIURL  string
	JSON    bool
	Quiet   bool
	Verbose bool

	// Name is the command word as typed, kept for error messages.
	Name string

	// Raw holds the arguments after the command word.
	Raw []string
}

const usageText = `blogsmith - AI blog generator for the terminal

Usage:
  blogsmith                          Start the terminal UI (default)
  blogsmith tui                      Start the terminal UI
  blogsmith status, s                Check the backend and show the base URL
  blogsmith list, ls                 List generated posts
    --skip N                         Posts to skip (default: 0)
    --limit N                        Posts to return (default: 20)
  blogsmith show <id>                Render a post
    --raw                            Print the markdown source
  blogsmith delete, rm <id>          Delete a post
    --confirm                        Skip the confirmation prompt
  blogsmith export <id>              Save a post to a file
    --format md|html|json            Export format (default: md)
    --output DIR                     Target directory (default: export.dir)
    --meta                           Include title, date and score metadata
    --open                           Open the file after saving
  blogsmith generate [topic...]      Generate a post
    --topic TEXT                     Topic (at least 5 characters)
    --tone TONE                      professional|casual|technical|educational
    --length LENGTH                  short|medium|long
    --keywords TEXT                  Comma-separated keywords
  blogsmith config [show]            Show the effective configuration
  blogsmith config path              Print the config file path
  blogsmith config init              Write a default config file
  blogsmith config get <key>         Print one setting
  blogsmith config set <key> <value> Change one setting
  blogsmith mock-server              Serve an in-memory backend
    --addr ADDR                      Listen address (default: :8000)
    --cors ORIGIN                    Allow a browser origin (repeatable via commas)
  blogsmith version                  Show version information
  blogsmith help                     Show this help

Global Flags:
  --api-url URL    Backend base URL (overrides config and BLOGSMITH_API_URL)
  --json           Output in JSON format
  -q, --quiet      Minimal output
  -v, --verbose    Debug logging

Environment:
  BLOGSMITH_API_URL, VITE_API_URL   Backend base URL
  BLOGSMITH_THEME                   auto|dark|light
  BLOGSMITH_EXPORT_DIR              Download directory
  BLOGSMITH_LOG_LEVEL               debug|info|warn|error

Examples:
  blogsmith --api-url http://localhost:8000
  blogsmith generate "The future of AI in healthcare" --tone technical --length short
  blogsmith list --limit 5 --json
  blogsmith export 42 --format html --output ./site
  blogsmith mock-server --addr :8000

Version: %s
`

// PrintUsage writes the help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "blogsmith version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go version: %s\n", runtime.Version())
}

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses command-line arguments and returns the command and args.
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	word := strings.ToLower(remaining[0])
	parsedArgs.Name = word
	parsedArgs.Raw = remaining[1:]

	switch word {
	case "tui":
		return CmdTUI, parsedArgs
	case "status", "s", "health":
		return CmdStatus, parsedArgs
	case "list", "ls", "history":
		return CmdList, parsedArgs
	case "show", "view", "get":
		return CmdShow, parsedArgs
	case "delete", "rm", "del":
		return CmdDelete, parsedArgs
	case "export", "save", "download":
		return CmdExport, parsedArgs
	case "generate", "gen", "new":
		return CmdGenerate, parsedArgs
	case "config", "cfg":
		return CmdConfig, parsedArgs
	case "mock-server", "mock", "serve":
		return CmdMockServer, parsedArgs
	case "version", "--version", "-V":
		return CmdVersion, parsedArgs
	case "help", "--help", "-h":
		return CmdHelp, parsedArgs
	default:
		return CmdUnknown, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
// Global flags may appear anywhere on the line.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--api-url":
			if i+1 < len(args) {
				i++
				parsedArgs.APIURL = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--api-url=") {
				parsedArgs.APIURL = strings.TrimPrefix(arg, "--api-url=")
			} else {
				remaining = append(remaining, arg)
			}
		}
	}

	return remaining, parsedArgs
}

// =============================================================================
// VERSION AND HELP
// =============================================================================

// VersionData is the --json payload of the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// HandleVersion prints version information.
func HandleVersion(env *Env, args Args) error {
	if args.JSON {
		return NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}).Print(env.Out)
	}
	PrintVersion(env.Out)
	return nil
}

// HandleHelp prints the usage text.
func HandleHelp(env *Env) error {
	PrintUsage(env.Out)
	return nil
}
