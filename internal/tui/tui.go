// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal front end of the diary, built on bubbletea.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/mdiary/internal/controller"
	"github.com/MKhiriev/mdiary/models"
)

// Run shows the diary until the session reaches quit. It returns the fatal
// error that ended the session, if there was one.
func Run(ctx context.Context, ctrl *controller.Controller, buildInfo models.AppBuildInfo) error {
	model := newAppModel(ctx, ctrl, buildInfo)

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return ctrl.Err()
}
