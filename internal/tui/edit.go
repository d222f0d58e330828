// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"

	"github.com/MKhiriev/mdiary/models"
)

type editModel struct {
	entry models.Entry
	text  textarea.Model
}

func newEditModel(entry models.Entry) editModel {
	ta := newEntryTextarea("")
	ta.SetValue(entry.Text)
	return editModel{entry: entry, text: ta}
}

func (m editModel) View() string {
	info := fmt.Sprintf("Editing entry %d. Originally created on %s.", m.entry.ID, m.entry.CreatedOn())
	out := helpStyle.Render(info) + "\n\n" + m.text.View()
	return renderPage("EDIT ENTRY", out, "ctrl+s: save │ esc: cancel")
}
