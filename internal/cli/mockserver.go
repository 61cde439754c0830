// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jeranaias/blogsmith-tui/internal/logging"
	"github.com/jeranaias/blogsmith-tui/internal/mockapi"
)

// DefaultMockAddr is where mock-server listens without --addr.
const DefaultMockAddr = ":8000"

const shutdownTimeout = 5 * time.Second

// HandleMockServer serves an in-memory backend until ctx is cancelled.
//
//	blogsmith mock-server [--addr :8000] [--cors http://localhost:5173]
func HandleMockServer(ctx context.Context, env *Env, args Args) error {
	p := NewArgParser(args.Raw)
	addr := p.FlagOrDefault("addr", DefaultMockAddr)

	var opts []mockapi.Option
	if cors := p.Flag("cors"); cors != "" {
		var origins []string
		for _, o := range strings.Split(cors, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		opts = append(opts, mockapi.WithCORSOrigins(origins...))
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return NewCommandError("mock-server", "listen", "could not listen on "+addr, err)
	}
	return serveMock(ctx, env, args, ln, mockapi.New(opts...))
}

// serveMock runs the HTTP server on ln and shuts it down gracefully when ctx
// ends.
func serveMock(ctx context.Context, env *Env, args Args, ln net.Listener, backend *mockapi.Server) error {
	srv := &http.Server{
		Handler:           logging.RequestLogger(log.Logger)(backend.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	url := "http://" + ln.Addr().String()
	log.Info().Str("addr", ln.Addr().String()).Msg("mock backend listening")
	env.printf(args, "%s Mock backend listening on %s\n", RenderStatus(true), url)
	env.printf(args, "%s\n", DimStyle.Render("Point the client at it with: blogsmith --api-url "+url))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return NewCommandError("mock-server", "serve", "server stopped", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return NewCommandError("mock-server", "shutdown", "graceful shutdown failed", err)
	}
	log.Info().Msg("mock backend stopped")
	return nil
}
