// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up          key.Binding
	down        key.Binding
	left        key.Binding
	right       key.Binding
	enter       key.Binding
	esc         key.Binding
	tab         key.Binding
	backtab     key.Binding
	toggle      key.Binding
	quit        key.Binding
	forceQuit   key.Binding
	save        key.Binding
	appendEntry key.Binding
	menu        key.Binding
	edit        key.Binding
	delete      key.Binding
	copy        key.Binding
	version     key.Binding
	yes         key.Binding
	no          key.Binding
}

var keys = keyMap{
	up:          key.NewBinding(key.WithKeys("up", "k")),
	down:        key.NewBinding(key.WithKeys("down", "j")),
	left:        key.NewBinding(key.WithKeys("left", "h")),
	right:       key.NewBinding(key.WithKeys("right", "l")),
	enter:       key.NewBinding(key.WithKeys("enter")),
	esc:         key.NewBinding(key.WithKeys("esc")),
	tab:         key.NewBinding(key.WithKeys("tab")),
	backtab:     key.NewBinding(key.WithKeys("shift+tab")),
	toggle:      key.NewBinding(key.WithKeys(" ")),
	quit:        key.NewBinding(key.WithKeys("q")),
	forceQuit:   key.NewBinding(key.WithKeys("ctrl+c")),
	save:        key.NewBinding(key.WithKeys("ctrl+s")),
	appendEntry: key.NewBinding(key.WithKeys("ctrl+o")),
	menu:        key.NewBinding(key.WithKeys("m")),
	edit:        key.NewBinding(key.WithKeys("e", "enter")),
	delete:      key.NewBinding(key.WithKeys("d")),
	copy:        key.NewBinding(key.WithKeys("c")),
	version:     key.NewBinding(key.WithKeys("v")),
	yes:         key.NewBinding(key.WithKeys("y")),
	no:          key.NewBinding(key.WithKeys("n")),
}
