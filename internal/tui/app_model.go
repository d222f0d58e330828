// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/mdiary/internal/app"
	"github.com/MKhiriev/mdiary/internal/controller"
	"github.com/MKhiriev/mdiary/internal/store"
	"github.com/MKhiriev/mdiary/models"
)

// appModel renders whatever view the controller is in. The controller owns
// navigation; this model only turns key presses into controller calls.
// Controller calls run inline in Update, so the store is never touched from
// two goroutines at once.
type appModel struct {
	ctx       context.Context
	ctrl      *controller.Controller
	buildInfo models.AppBuildInfo

	setup  setupModel
	menu   menuModel
	writer writerModel
	reader readerModel
	edit   editModel

	showError     bool
	errorOverlay  errorOverlayModel
	showConfirm   bool
	confirm       confirmModel
	showBuildInfo bool
}

func newAppModel(ctx context.Context, ctrl *controller.Controller, buildInfo models.AppBuildInfo) appModel {
	m := appModel{
		ctx:       ctx,
		ctrl:      ctrl,
		buildInfo: buildInfo,
		setup:     newSetupModel(ctrl.KeyPath),
		menu:      newMenuModel(),
		writer:    newWriterModel(),
		reader:    newReaderModel(),
	}
	if ctrl.View().Kind == controller.ViewMenu {
		m.refreshMenu()
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	if next.ctrl.View().Kind == controller.ViewQuit {
		return next, tea.Quit
	}
	return next, cmd
}

func (m appModel) update(msg tea.Msg) (appModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.forceQuit) {
			m.dispatch(controller.On(controller.IntentQuit))
			return m, nil
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			if key.Matches(msg, keys.yes) {
				m.showConfirm = false
				return m.deleteEntry(m.confirm.entryID)
			}
			if key.Matches(msg, keys.no) || key.Matches(msg, keys.esc) {
				m.showConfirm = false
			}
			return m, nil
		}
		if m.showBuildInfo {
			if key.Matches(msg, keys.esc) || key.Matches(msg, keys.version) {
				m.showBuildInfo = false
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case copiedMsg:
		m.reader.status = "Copied to clipboard!"
		return m, cmdClearStatus()
	case copyFailedMsg:
		m.showErrorf(fmt.Sprintf("copy to clipboard: %v", msg.err))
		return m, nil
	case clearStatusMsg:
		m.reader.status = ""
		m.writer.status = ""
		m.menu.status = ""
		return m, nil
	}

	switch m.ctrl.View().Kind {
	case controller.ViewInit:
		return m.updateSetup(msg)
	case controller.ViewMenu:
		return m.updateMenu(msg)
	case controller.ViewWriter:
		return m.updateWriter(msg)
	case controller.ViewReader:
		return m.updateReader(msg)
	case controller.ViewEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.ctrl.View().Kind {
	case controller.ViewInit:
		body = m.setup.View()
	case controller.ViewMenu:
		body = m.menu.View()
	case controller.ViewWriter:
		body = m.writer.View()
	case controller.ViewReader:
		body = m.reader.View()
	case controller.ViewEdit:
		body = m.edit.View()
	case controller.ViewQuit:
		body = "Bye!"
	}

	if m.showBuildInfo {
		body = renderBuildInfoWindow(m.buildInfo)
	}
	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m appModel) updateSetup(msg tea.Msg) (appModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.dispatch(controller.On(controller.IntentQuit))
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.setup.moveFocus(1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.setup.moveFocus(-1)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			switch m.setup.focus {
			case setupFocusConfirmQuit:
				return m.confirmSetup(true)
			case setupFocusQuit:
				m.dispatch(controller.On(controller.IntentQuit))
				return m, nil
			default:
				return m.confirmSetup(false)
			}
		}

		if m.setup.focus == setupFocusKey {
			if key.Matches(keyMsg, keys.toggle) || key.Matches(keyMsg, keys.left) || key.Matches(keyMsg, keys.right) {
				m.setup.usingKey = !m.setup.usingKey
			}
			return m, nil
		}
	}

	if m.setup.focus != setupFocusName {
		return m, nil
	}

	var cmd tea.Cmd
	m.setup.name, cmd = m.setup.name.Update(msg)
	return m, cmd
}

func (m appModel) confirmSetup(thenQuit bool) (appModel, tea.Cmd) {
	if err := m.ctrl.Initialize(m.ctx, m.setup.name.Value(), m.setup.usingKey); err != nil {
		m.handleErr(err)
		return m, nil
	}

	if thenQuit {
		m.dispatch(controller.On(controller.IntentQuit))
		return m, nil
	}

	m.refreshMenu()
	m.menu.status = "Diary created."
	if m.setup.usingKey {
		m.menu.status += " Key stored at " + m.ctrl.KeyPath(m.ctrl.Settings().Name()) + "."
	}
	return m, nil
}

func (m appModel) updateMenu(msg tea.Msg) (appModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		m.menu.move(-1)
	case key.Matches(keyMsg, keys.down):
		m.menu.move(1)
	case key.Matches(keyMsg, keys.version):
		m.showBuildInfo = true
	case key.Matches(keyMsg, keys.quit):
		m.dispatch(controller.On(controller.IntentQuit))
	case key.Matches(keyMsg, keys.enter):
		switch m.menu.current() {
		case menuWrite:
			if m.dispatch(controller.On(controller.IntentNewEntry)) {
				m.writer = newWriterModel()
			}
		case menuRead:
			if m.dispatch(controller.On(controller.IntentViewEntries)) {
				m.loadEntries()
			}
		case menuQuit:
			m.dispatch(controller.On(controller.IntentQuit))
		}
	}

	return m, nil
}

func (m *appModel) refreshMenu() {
	settings := m.ctrl.Settings()
	m.menu.diaryName = settings.Name()
	m.menu.encrypted = settings.UsingKey

	n, err := m.ctrl.CountEntries(m.ctx)
	if err != nil {
		m.handleErr(err)
		return
	}
	m.menu.entryCount = n
}

func (m appModel) updateWriter(msg tea.Msg) (appModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			if m.dispatch(controller.On(controller.IntentToMenu)) {
				m.refreshMenu()
			}
			return m, nil
		case key.Matches(keyMsg, keys.appendEntry):
			entry, saved := m.saveNewEntry()
			if saved && m.dispatch(controller.On(controller.IntentAppend)) {
				m.writer.text.Reset()
				m.writer.status = fmt.Sprintf("Entry no. %d added.", entry.ID)
				return m, cmdClearStatus()
			}
			return m, nil
		case key.Matches(keyMsg, keys.save):
			if _, saved := m.saveNewEntry(); saved {
				m.dispatch(controller.On(controller.IntentSave))
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.writer.text, cmd = m.writer.text.Update(msg)
	return m, cmd
}

func (m *appModel) saveNewEntry() (models.Entry, bool) {
	text := m.writer.text.Value()
	if strings.TrimSpace(text) == "" {
		m.writer.status = app.MsgEmptyEntry
		return models.Entry{}, false
	}

	entry, err := m.ctrl.NewEntry(m.ctx, text)
	if err != nil {
		m.handleErr(err)
		return models.Entry{}, false
	}
	return entry, true
}

func (m appModel) updateReader(msg tea.Msg) (appModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.up):
			m.reader.move(-1)
			return m, nil
		case key.Matches(keyMsg, keys.down):
			m.reader.move(1)
			return m, nil
		case key.Matches(keyMsg, keys.edit):
			return m.beginEdit()
		case key.Matches(keyMsg, keys.delete):
			if entry, ok := m.reader.current(); ok {
				m.confirm = confirmModel{entryID: entry.ID, preview: entry.Text}
				m.showConfirm = true
			}
			return m, nil
		case key.Matches(keyMsg, keys.copy):
			if entry, ok := m.reader.current(); ok {
				return m, cmdCopyToClipboard(entry.Text)
			}
			return m, nil
		case key.Matches(keyMsg, keys.esc), key.Matches(keyMsg, keys.menu):
			if m.dispatch(controller.On(controller.IntentToMenu)) {
				m.refreshMenu()
			}
			return m, nil
		case key.Matches(keyMsg, keys.quit):
			m.dispatch(controller.On(controller.IntentQuit))
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.reader.viewport, cmd = m.reader.viewport.Update(msg)
	return m, cmd
}

func (m *appModel) loadEntries() {
	entries, err := m.ctrl.ListEntries(m.ctx)
	if err != nil {
		m.handleErr(err)
		return
	}
	m.reader.setEntries(entries)
}

func (m appModel) beginEdit() (appModel, tea.Cmd) {
	current, ok := m.reader.current()
	if !ok {
		return m, nil
	}

	entry, err := m.ctrl.LoadEntry(m.ctx, current.ID)
	if err != nil {
		m.handleErr(err)
		if errors.Is(err, store.ErrEntryNotFound) {
			m.loadEntries()
		}
		return m, nil
	}

	if m.dispatch(controller.UpdateEntry(entry.ID)) {
		m.edit = newEditModel(entry)
		m.edit.text.SetWidth(m.writer.text.Width())
	}
	return m, nil
}

func (m appModel) deleteEntry(id int64) (appModel, tea.Cmd) {
	if err := m.ctrl.DeleteEntry(m.ctx, id); err != nil {
		m.handleErr(err)
		return m, nil
	}

	m.reader.removeEntry(id)
	m.reader.status = fmt.Sprintf("Entry no. %d deleted.", id)
	return m, cmdClearStatus()
}

func (m appModel) updateEdit(msg tea.Msg) (appModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			if m.dispatch(controller.On(controller.IntentCancel)) {
				m.loadEntries()
			}
			return m, nil
		case key.Matches(keyMsg, keys.save):
			return m.commitEdit()
		}
	}

	var cmd tea.Cmd
	m.edit.text, cmd = m.edit.text.Update(msg)
	return m, cmd
}

func (m appModel) commitEdit() (appModel, tea.Cmd) {
	id := m.ctrl.View().EntryID
	text := m.edit.text.Value()
	if strings.TrimSpace(text) == "" {
		m.showErrorf(app.MsgEmptyEntry)
		return m, nil
	}

	_, err := m.ctrl.SaveEntry(m.ctx, id, text)
	if errors.Is(err, store.ErrEntryNotFound) {
		m.handleErr(err)
		if m.dispatch(controller.On(controller.IntentCancel)) {
			m.loadEntries()
		}
		return m, nil
	}
	if err != nil {
		m.handleErr(err)
		return m, nil
	}

	if m.dispatch(controller.On(controller.IntentSave)) {
		m.loadEntries()
		m.reader.status = fmt.Sprintf("Entry no. %d updated.", id)
		return m, cmdClearStatus()
	}
	return m, nil
}

// dispatch forwards in to the controller and reports whether the view moved.
func (m *appModel) dispatch(in controller.Intent) bool {
	if _, err := m.ctrl.Dispatch(in); err != nil {
		m.showErrorf(err.Error())
		return false
	}
	return true
}

// handleErr shows recoverable errors. Fatal ones have already moved the
// controller to quit, and Update ends the program.
func (m *appModel) handleErr(err error) {
	if m.ctrl.View().Kind == controller.ViewQuit {
		return
	}
	m.showErrorf(app.UserMessage(err))
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

func (m *appModel) resize(width, height int) {
	w := max(width-6, 20)
	m.writer.text.SetWidth(w)
	if m.ctrl.View().Kind == controller.ViewEdit {
		m.edit.text.SetWidth(w)
	}
	m.reader.resize(w, max(height-10, 5))
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return copyFailedMsg{err: err}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
