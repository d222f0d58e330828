// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
)

type writerModel struct {
	text   textarea.Model
	status string
}

func newEntryTextarea(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(72)
	ta.SetHeight(12)
	ta.Focus()
	return ta
}

func newWriterModel() writerModel {
	return writerModel{text: newEntryTextarea("Dear diary...")}
}

func (m writerModel) View() string {
	out := m.text.View()
	if m.status != "" {
		out += "\n\n" + statusStyle.Render(m.status)
	}
	return renderPage("NEW ENTRY", out, "ctrl+o: add to diary │ ctrl+s: save & quit │ esc: menu")
}
