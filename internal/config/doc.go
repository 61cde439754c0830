// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// blogsmith.
//
// # Key Types
//
//   - Config: main configuration structure
//   - APIConfig: backend address, timeouts and rate limit
//   - UIConfig: theme and layout preferences
//   - ExportConfig: download directory and alternate export format
//   - LoggingConfig: log level and destination
//
// # Configuration Precedence
//
// Configuration is resolved in this order, later sources winning:
//   - Built-in defaults
//   - ~/.blogsmith/config.toml
//   - .env in the working directory (never overrides variables already set)
//   - Environment variables (BLOGSMITH_*, plus VITE_API_URL)
//
// The backend base URL is read once at startup.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := api.NewClient(cfg.ClientConfig())
package config
