// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/mdiary/models"
)

const entryIndent = "    "

type readerModel struct {
	entries  []models.Entry
	idx      int
	status   string
	viewport viewport.Model
}

func newReaderModel() readerModel {
	return readerModel{viewport: viewport.New(72, 16)}
}

func (m readerModel) current() (models.Entry, bool) {
	if len(m.entries) == 0 || m.idx < 0 || m.idx >= len(m.entries) {
		return models.Entry{}, false
	}
	return m.entries[m.idx], true
}

func (m *readerModel) setEntries(entries []models.Entry) {
	m.entries = entries
	m.clamp()
	m.refresh()
}

// removeEntry drops id from the list in place, keeping the cursor on the
// neighbouring entry.
func (m *readerModel) removeEntry(id int64) {
	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			break
		}
	}
	m.clamp()
	m.refresh()
}

func (m *readerModel) move(delta int) {
	m.idx += delta
	m.clamp()
	m.refresh()
}

func (m *readerModel) resize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.refresh()
}

func (m *readerModel) clamp() {
	if m.idx >= len(m.entries) {
		m.idx = len(m.entries) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *readerModel) refresh() {
	var b strings.Builder
	selectedLine := 0
	wrap := lipgloss.NewStyle().Width(max(m.viewport.Width-len(entryIndent), 10))

	for i, e := range m.entries {
		if i == m.idx {
			selectedLine = strings.Count(b.String(), "\n")
			b.WriteString(selectedStyle.Render("> " + e.Header()))
		} else {
			b.WriteString("  " + headerStyle.Render(e.Header()))
		}
		b.WriteString("\n")

		for _, line := range strings.Split(wrap.Render(e.Text), "\n") {
			b.WriteString(entryIndent)
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
	if selectedLine < m.viewport.YOffset || selectedLine >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(selectedLine)
	}
}

func (m readerModel) View() string {
	var out string
	if len(m.entries) == 0 {
		out = "No entries yet."
	} else {
		out = m.viewport.View()
	}

	if m.status != "" {
		out += "\n" + statusStyle.Render(m.status)
	}

	return renderPage("ENTRIES", out, "↑/↓: navigate │ e/enter: update │ d: delete │ c: copy │ esc/m: menu │ q: quit")
}
