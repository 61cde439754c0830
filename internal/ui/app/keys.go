// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global bindings, active whatever pane has focus.
type KeyMap struct {
	NextPane       key.Binding
	PrevPane       key.Binding
	DismissError   key.Binding
	DismissSuccess key.Binding
	Reprobe        key.Binding
	Help           key.Binding
	Quit           key.Binding
}

// DefaultKeyMap returns the default global bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		PrevPane: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous pane"),
		),
		DismissError: key.NewBinding(
			key.WithKeys("alt+e"),
			key.WithHelp("alt+e", "dismiss error"),
		),
		DismissSuccess: key.NewBinding(
			key.WithKeys("alt+s"),
			key.WithHelp("alt+s", "dismiss success"),
		),
		Reprobe: key.NewBinding(
			key.WithKeys("alt+r"),
			key.WithHelp("alt+r", "check connection"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "f1"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// globalHelp is shared by every pane's help view.
func (k KeyMap) globalHelp() []key.Binding {
	return []key.Binding{k.NextPane, k.Reprobe, k.Help, k.Quit}
}

// paneKeys adapts a pane's bindings plus the global ones to help.KeyMap.
type paneKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (p paneKeys) ShortHelp() []key.Binding  { return p.short }
func (p paneKeys) FullHelp() [][]key.Binding { return p.full }
