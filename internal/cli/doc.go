// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-interactive
// commands of blogsmith.
//
// # Key Types
//
//   - Command: enumeration of the available commands
//   - Args: parsed global flags plus the command's own arguments
//   - Env: the I/O streams, configuration and API client a command runs with
//   - JSONResponse: the envelope printed by every command under --json
//
// # Usage
//
//	cmd, args := cli.Parse()
//	if cmd == cli.CmdTUI {
//	    // start the Bubble Tea program
//	}
//	err := cli.Run(ctx, cmd, args, env)
//	os.Exit(cli.GetExitCode(err))
//
// # Commands
//
//   - status: backend health and base URL
//   - list, show, delete, export: history management
//   - generate: one-shot generation with the form's validation rules
//   - config: show, path, init, get, set
//   - mock-server: the in-memory fake backend, for offline demos
//   - version, help
//
// Every command except help and mock-server supports --json.
package cli
