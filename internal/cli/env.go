// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jeranaias/blogsmith-tui/internal/config"
	"github.com/jeranaias/blogsmith-tui/internal/model"
)

// Backend is the API surface the commands use.
type Backend interface {
	BaseURL() string
	Generate(ctx context.Context, req model.GenerationRequest) (*model.BlogPost, error)
	ListBlogs(ctx context.Context, skip, limit int) (*model.BlogList, error)
	GetBlog(ctx context.Context, id model.ID) (*model.BlogPost, error)
	DeleteBlog(ctx context.Context, id model.ID) (*model.Confirmation, error)
	CheckHealth(ctx context.Context) (*model.HealthStatus, error)
}

// Env is everything a command runs with. Tests build one around buffers
// and a mockapi-backed client.
type Env struct {
	Config *config.Config
	Client Backend
	Out    io.Writer
	Err    io.Writer
	// Prompter asks for confirmations. Nil means no interactive input.
	Prompter Prompter
	// Interactive reports whether stdin is a terminal.
	Interactive bool
}

// NewEnv builds the process environment: stdio streams, a liner prompter
// when stdin is a terminal.
func NewEnv(cfg *config.Config, client Backend) *Env {
	env := &Env{
		Config:      cfg,
		Client:      client,
		Out:         os.Stdout,
		Err:         os.Stderr,
		Interactive: IsTTY(),
	}
	if env.Interactive {
		env.Prompter = LinerPrompter{}
	}
	return env
}

// printf writes to Out unless quiet.
func (e *Env) printf(args Args, format string, a ...any) {
	if args.Quiet {
		return
	}
	fmt.Fprintf(e.Out, format, a...)
}

// =============================================================================
// DISPATCH
// =============================================================================

// Run executes a non-TUI command. Errors are returned, not printed; the
// caller renders them with DisplayError and exits with GetExitCode.
func Run(ctx context.Context, cmd Command, args Args, env *Env) error {
	switch cmd {
	case CmdStatus:
		return HandleStatus(ctx, env, args)
	case CmdList:
		return HandleList(ctx, env, args)
	case CmdShow:
		return HandleShow(ctx, env, args)
	case CmdDelete:
		return HandleDelete(ctx, env, args)
	case CmdExport:
		return HandleExport(ctx, env, args)
	case CmdGenerate:
		return HandleGenerate(ctx, env, args)
	case CmdConfig:
		return HandleConfig(env, args)
	case CmdMockServer:
		return HandleMockServer(ctx, env, args)
	case CmdVersion:
		return HandleVersion(env, args)
	case CmdHelp:
		return HandleHelp(env)
	case CmdTUI:
		return NewCommandError("tui", "run", "the terminal UI is started by main", nil)
	default:
		return NewValidationErrorWithExample("command", args.Name, "unknown command", "blogsmith help")
	}
}
