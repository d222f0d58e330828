// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"
)

type menuItem int

const (
	menuWrite menuItem = iota
	menuRead
	menuQuit
)

var menuLabels = map[menuItem]string{
	menuWrite: "Write a new entry",
	menuRead:  "Read entries",
	menuQuit:  "Quit",
}

type menuModel struct {
	items      []menuItem
	idx        int
	diaryName  string
	encrypted  bool
	entryCount int64
	status     string
}

func newMenuModel() menuModel {
	return menuModel{
		items: []menuItem{menuWrite, menuRead, menuQuit},
	}
}

func (m menuModel) current() menuItem {
	return m.items[m.idx]
}

func (m *menuModel) move(delta int) {
	m.idx += delta
	if m.idx < 0 {
		m.idx = 0
	}
	if m.idx >= len(m.items) {
		m.idx = len(m.items) - 1
	}
}

func (m menuModel) View() string {
	var b strings.Builder

	lock := "plain"
	if m.encrypted {
		lock = "encrypted"
	}
	b.WriteString(fmt.Sprintf("Diary %q (%s), %d entries\n\n", m.diaryName, lock, m.entryCount))

	for i, item := range m.items {
		label := menuLabels[item]
		if i == m.idx {
			b.WriteString(selectedStyle.Render("> " + label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}

	return renderPage("MDIARY", strings.TrimRight(b.String(), "\n"), "enter: select │ ↑/↓: navigate │ v: version │ q: quit")
}
