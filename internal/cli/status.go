// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// StatusData is the --json payload of the status command.
type StatusData struct {
	BaseURL     string `json:"base_url"`
	Connected   bool   `json:"connected"`
	Status      string `json:"status,omitempty"`
	Environment string `json:"environment,omitempty"`
	LatencyMS   int64  `json:"latency_ms"`
	Error       string `json:"error,omitempty"`
}

// HandleStatus probes the backend once and reports the result. An
// unreachable backend is reported and also returned as the error, so the
// exit code reflects it.
func HandleStatus(ctx context.Context, env *Env, args Args) error {
	start := time.Now()
	health, err := env.Client.CheckHealth(ctx)
	data := StatusData{
		BaseURL:   env.Client.BaseURL(),
		Connected: err == nil,
		LatencyMS: time.Since(start).Milliseconds(),
	}
	if health != nil {
		data.Status = health.Status
		data.Environment = health.Environment
	}
	if err != nil {
		data.Error = err.Error()
		log.Warn().Err(err).Str("base_url", data.BaseURL).Msg("backend health check failed")
	}

	if args.JSON {
		resp := NewJSONResponse("status", data)
		if err != nil {
			resp.Success = false
			msg := err.Error()
			resp.Error = &msg
		}
		if perr := resp.Print(env.Out); perr != nil {
			return perr
		}
		return err
	}

	env.printf(args, "%s\n", TitleStyle.Render("blogsmith status"))
	env.printf(args, "%s%s\n", RenderLabel("Backend", 0), ValueStyle.Render(data.BaseURL))
	if err != nil {
		env.printf(args, "%s%s %s\n", RenderLabel("Connection", 0), RenderStatus(false), ErrorStyle.Render("disconnected"))
		return NewCommandError("status", "probe",
			fmt.Sprintf("Cannot connect to the API server. Make sure the backend is running at %s", data.BaseURL), err)
	}
	env.printf(args, "%s%s %s\n", RenderLabel("Connection", 0), RenderStatus(true), SuccessStyle.Render("connected"))
	if data.Status != "" {
		env.printf(args, "%s%s\n", RenderLabel("Status", 0), ValueStyle.Render(data.Status))
	}
	if data.Environment != "" {
		env.printf(args, "%s%s\n", RenderLabel("Environment", 0), ValueStyle.Render(data.Environment))
	}
	env.printf(args, "%s%s\n", RenderLabel("Latency", 0), DimStyle.Render(fmt.Sprintf("%dms", data.LatencyMS)))
	return nil
}
