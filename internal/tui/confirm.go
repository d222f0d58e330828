// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "fmt"

type confirmModel struct {
	entryID int64
	preview string
}

func (m confirmModel) View() string {
	content := fmt.Sprintf("Delete entry no. %d?\n", m.entryID)
	if m.preview != "" {
		content += helpStyle.Render(firstLine(m.preview, 40)) + "\n"
	}
	content += "\ny yes    n no"
	return overlayBoxStyle.Render(content)
}
