// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jeranaias/blogsmith-tui/internal/config"
)

// configPath locates the config file; tests point it at a temp dir.
var configPath = config.ConfigPath

// ConfigData is the --json payload of config get/set/path/init.
type ConfigData struct {
	Key   string `json:"key,omitempty"`
	Value string `json:"value,omitempty"`
	Path  string `json:"path,omitempty"`
}

// HandleConfig dispatches the config subcommands.
//
//	blogsmith config [show]
//	blogsmith config path
//	blogsmith config init [--force]
//	blogsmith config get <key>
//	blogsmith config set <key> <value>
func HandleConfig(env *Env, args Args) error {
	p := NewArgParser(args.Raw, "force")
	sub := p.Positional(0)
	if sub == "" {
		sub = "show"
	}

	switch sub {
	case "show", "list":
		return configShow(env, args)
	case "path":
		return configShowPath(env, args)
	case "init":
		return configInit(env, args, p.BoolFlag("force"))
	case "get":
		return configGet(env, args, p.Positional(1))
	case "set":
		return configSet(env, args, p.Positional(1), p.Positional(2), p.PositionalCount() >= 3)
	default:
		return NewValidationErrorWithExample("subcommand", sub, "unknown config subcommand", "blogsmith config show")
	}
}

func configShow(env *Env, args Args) error {
	if args.JSON {
		return NewJSONResponse("config", env.Config).Print(env.Out)
	}
	env.printf(args, "%s\n", TitleStyle.Render("blogsmith configuration"))
	for _, key := range config.Keys() {
		value, _ := env.Config.Get(key)
		if value == "" {
			value = DimStyle.Render("(unset)")
		} else {
			value = ValueStyle.Render(value)
		}
		env.printf(args, "%s%s\n", RenderLabel(key, 24), value)
	}
	if path, err := configPath(); err == nil {
		env.printf(args, "\n%s\n", DimStyle.Render("File: "+path))
	}
	return nil
}

func configShowPath(env *Env, args Args) error {
	path, err := configPath()
	if err != nil {
		return NewCommandError("config", "path", "could not locate the config directory", err)
	}
	if args.JSON {
		return NewJSONResponse("config", ConfigData{Path: path}).Print(env.Out)
	}
	fmt.Fprintln(env.Out, path)
	return nil
}

func configInit(env *Env, args Args, force bool) error {
	path, err := configPath()
	if err != nil {
		return NewCommandError("config", "init", "could not locate the config directory", err)
	}
	if _, err := os.Stat(path); err == nil && !force {
		return NewValidationErrorWithExample("config", path, "config file already exists", "blogsmith config init --force")
	}
	if err := config.SaveTOML(config.Default(), path); err != nil {
		return NewCommandError("config", "init", "could not write the config file", err)
	}
	if args.JSON {
		return NewJSONResponse("config", ConfigData{Path: path}).Print(env.Out)
	}
	env.printf(args, "%s Wrote %s\n", RenderStatus(true), path)
	return nil
}

func configGet(env *Env, args Args, key string) error {
	if key == "" {
		return ErrMissingArgument("key", "blogsmith config get api.base_url")
	}
	value, err := env.Config.Get(key)
	if err != nil {
		return NewValidationErrorWithExample("key", key, "unknown config key", "blogsmith config show")
	}
	if args.JSON {
		return NewJSONResponse("config", ConfigData{Key: key, Value: value}).Print(env.Out)
	}
	fmt.Fprintln(env.Out, value)
	return nil
}

// configSet edits the file on disk rather than the effective config, so
// environment overrides are never persisted.
func configSet(env *Env, args Args, key, value string, hasValue bool) error {
	if key == "" || !hasValue {
		return ErrMissingArgument("key value", "blogsmith config set ui.theme dark")
	}
	path, err := configPath()
	if err != nil {
		return NewCommandError("config", "set", "could not locate the config directory", err)
	}

	onDisk := config.Default()
	if err := config.LoadTOML(onDisk, path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return NewCommandError("config", "set", "could not read "+path, err)
	}
	if _, err := onDisk.Get(key); err != nil {
		return NewValidationErrorWithExample("key", key, "unknown config key", "blogsmith config show")
	}
	if err := onDisk.Set(key, value); err != nil {
		return err
	}
	if err := config.SaveTOML(onDisk, path); err != nil {
		return NewCommandError("config", "set", "could not write the config file", err)
	}
	_ = env.Config.Set(key, value)

	if args.JSON {
		return NewJSONResponse("config", ConfigData{Key: key, Value: value, Path: path}).Print(env.Out)
	}
	env.printf(args, "%s %s = %s\n", RenderStatus(true), key, value)
	return nil
}
