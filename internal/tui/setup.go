// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// setup form focus order
const (
	setupFocusName = iota
	setupFocusKey
	setupFocusConfirm
	setupFocusConfirmQuit
	setupFocusQuit
	setupFocusCount
)

var setupButtons = []string{"Confirm & to diary", "Confirm & Quit", "Quit"}

type setupModel struct {
	name     textinput.Model
	usingKey bool
	focus    int
	// keyPath renders where the key for a name would be written.
	keyPath func(name string) string
}

func newSetupModel(keyPath func(string) string) setupModel {
	name := textinput.New()
	name.Placeholder = "my diary"
	name.CharLimit = 64
	name.Width = 40
	name.Focus()

	return setupModel{
		name:    name,
		keyPath: keyPath,
	}
}

func (m *setupModel) moveFocus(delta int) {
	m.focus = (m.focus + delta + setupFocusCount) % setupFocusCount
	if m.focus == setupFocusName {
		m.name.Focus()
	} else {
		m.name.Blur()
	}
}

func (m setupModel) View() string {
	var b strings.Builder

	b.WriteString("Welcome! Let's set up your diary.\n\n")

	b.WriteString(m.label(setupFocusName, "Diary name: "))
	b.WriteString(m.name.View())
	b.WriteString("\n\n")

	yes, no := "( ) yes", "(•) no"
	if m.usingKey {
		yes, no = "(•) yes", "( ) no"
	}
	b.WriteString(m.label(setupFocusKey, "Encrypt with a key: "))
	b.WriteString(yes + "  " + no)
	b.WriteString("\n")

	if m.usingKey {
		name := strings.TrimSpace(m.name.Value())
		if name == "" {
			name = "<diary name>"
		}
		b.WriteString(helpStyle.Render("Your key will be stored at " + m.keyPath(name) + " (Keep it safe!)"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, label := range setupButtons {
		button := "[ " + label + " ]"
		if m.focus == setupFocusConfirm+i {
			button = selectedStyle.Render(button)
		}
		b.WriteString(button)
		b.WriteString("  ")
	}

	return renderPage("NEW DIARY", b.String(), "tab/shift+tab: move │ space/←/→: toggle key │ enter: confirm │ esc: quit")
}

func (m setupModel) label(focus int, text string) string {
	if m.focus == focus {
		return selectedStyle.Render(text)
	}
	return text
}
