// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package controller

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when an intent is not allowed from the
// current view. The view is left unchanged.
var ErrInvalidTransition = errors.New("invalid view transition")

// ViewKind enumerates the screens of a session.
type ViewKind int

const (
	ViewInit ViewKind = iota
	ViewMenu
	ViewWriter
	ViewReader
	ViewEdit
	ViewQuit
)

func (k ViewKind) String() string {
	switch k {
	case ViewInit:
		return "init"
	case ViewMenu:
		return "menu"
	case ViewWriter:
		return "writer"
	case ViewReader:
		return "reader"
	case ViewEdit:
		return "edit"
	case ViewQuit:
		return "quit"
	default:
		return fmt.Sprintf("view(%d)", int(k))
	}
}

// View is the current screen. EntryID is set only for [ViewEdit].
type View struct {
	Kind    ViewKind
	EntryID int64
}

func (v View) String() string {
	if v.Kind == ViewEdit {
		return fmt.Sprintf("edit(%d)", v.EntryID)
	}
	return v.Kind.String()
}

// IntentKind enumerates what the user asked for.
type IntentKind int

const (
	IntentConfigured IntentKind = iota
	IntentNewEntry
	IntentViewEntries
	IntentSave
	IntentAppend
	IntentToMenu
	IntentUpdate
	IntentCancel
	IntentQuit
)

func (k IntentKind) String() string {
	switch k {
	case IntentConfigured:
		return "configured"
	case IntentNewEntry:
		return "new entry"
	case IntentViewEntries:
		return "view entries"
	case IntentSave:
		return "save"
	case IntentAppend:
		return "append"
	case IntentToMenu:
		return "to menu"
	case IntentUpdate:
		return "update"
	case IntentCancel:
		return "cancel"
	case IntentQuit:
		return "quit"
	default:
		return fmt.Sprintf("intent(%d)", int(k))
	}
}

// Intent is a user request that may move the session to another view.
// EntryID is meaningful only for [IntentUpdate].
type Intent struct {
	Kind    IntentKind
	EntryID int64
}

// On builds a parameterless intent.
func On(kind IntentKind) Intent {
	return Intent{Kind: kind}
}

// UpdateEntry builds the intent that opens entry id for editing.
func UpdateEntry(id int64) Intent {
	return Intent{Kind: IntentUpdate, EntryID: id}
}

func (i Intent) String() string {
	if i.Kind == IntentUpdate {
		return fmt.Sprintf("update(%d)", i.EntryID)
	}
	return i.Kind.String()
}

// Transition computes the view that follows v when in is requested.
//
//	init   --configured-->  menu
//	menu   --new entry-->   writer
//	menu   --view entries-> reader
//	writer --save-->        quit
//	writer --append-->      writer
//	writer --to menu-->     menu
//	reader --update(E)-->   edit(E)
//	reader --to menu-->     menu
//	edit   --save|cancel--> reader
//	any    --quit-->        quit
//
// Quit is terminal. Every other combination returns v unchanged together
// with [ErrInvalidTransition].
func Transition(v View, in Intent) (View, error) {
	if v.Kind == ViewQuit {
		return v, fmt.Errorf("%w: %s on %s: session has ended", ErrInvalidTransition, in, v)
	}
	if in.Kind == IntentQuit {
		return View{Kind: ViewQuit}, nil
	}

	switch v.Kind {
	case ViewInit:
		if in.Kind == IntentConfigured {
			return View{Kind: ViewMenu}, nil
		}
	case ViewMenu:
		switch in.Kind {
		case IntentNewEntry:
			return View{Kind: ViewWriter}, nil
		case IntentViewEntries:
			return View{Kind: ViewReader}, nil
		}
	case ViewWriter:
		switch in.Kind {
		case IntentSave:
			return View{Kind: ViewQuit}, nil
		case IntentAppend:
			return View{Kind: ViewWriter}, nil
		case IntentToMenu:
			return View{Kind: ViewMenu}, nil
		}
	case ViewReader:
		switch in.Kind {
		case IntentUpdate:
			if in.EntryID > 0 {
				return View{Kind: ViewEdit, EntryID: in.EntryID}, nil
			}
		case IntentToMenu:
			return View{Kind: ViewMenu}, nil
		}
	case ViewEdit:
		switch in.Kind {
		case IntentSave, IntentCancel:
			return View{Kind: ViewReader}, nil
		}
	}

	return v, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, in, v)
}
