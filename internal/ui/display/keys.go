// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package display

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard bindings of the display.
type KeyMap struct {
	Copy      key.Binding
	Download  key.Binding
	ExportAlt key.Binding
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Top       key.Binding
}

// DefaultKeyMap returns the default display bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy markdown"),
		),
		Download: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "download .md"),
		),
		ExportAlt: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "export html/json"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d", " "),
			key.WithHelp("PgDn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
	}
}

// ShortHelp returns the bindings shown in the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Copy, k.Download, k.ExportAlt}
}

// FullHelp returns the bindings shown in the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Copy, k.Download, k.ExportAlt},
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top},
	}
}
