package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"plantmanager/internal/db"
	"plantmanager/internal/model"
)

type undoAction struct {
	label string
	undo  func() error
	redo  func() error
}

type undoAppliedMsg struct {
	err       error
	action    undoAction
	direction string // undo, redo
}

func (m *Model) pushUndoAction(action undoAction) {
	m.undoStack = append(m.undoStack, action)
	m.redoStack = nil
}

func (m *Model) undoCmd() tea.Cmd {
	if len(m.undoStack) == 0 {
		return nil
	}
	action := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	return func() tea.Msg {
		err := action.undo()
		return undoAppliedMsg{err: err, action: action, direction: "undo"}
	}
}

func (m *Model) redoCmd() tea.Cmd {
	if len(m.redoStack) == 0 {
		return nil
	}
	action := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	return func() tea.Msg {
		err := action.redo()
		return undoAppliedMsg{err: err, action: action, direction: "redo"}
	}
}

// buildSaveAction undoes a save by restoring the previous reminder, or by
// removing the plant when it was not saved before.
func (m *Model) buildSaveAction(msg model.PlantSavedMsg) undoAction {
	ctx, database := m.ctx, m.db
	after := msg.Plant

	if msg.Before == nil {
		return undoAction{
			label: after.Name + " saved",
			undo: func() error {
				_, err := db.RemovePlant(ctx, database, after.ID)
				return err
			},
			redo: func() error {
				_, err := db.SavePlant(ctx, database, after)
				return err
			},
		}
	}

	before := *msg.Before
	return undoAction{
		label: after.Name + " reminder updated",
		undo: func() error {
			_, err := db.SavePlant(ctx, database, before)
			return err
		},
		redo: func() error {
			_, err := db.SavePlant(ctx, database, after)
			return err
		},
	}
}

func (m *Model) buildRemoveAction(msg model.PlantRemovedMsg) undoAction {
	ctx, database := m.ctx, m.db
	removed := msg.Removed
	return undoAction{
		label: removed.Name + " removed",
		undo: func() error {
			_, err := db.SavePlant(ctx, database, removed)
			return err
		},
		redo: func() error {
			_, err := db.RemovePlant(ctx, database, removed.ID)
			return err
		},
	}
}

func (m *Model) applyUndoResult(msg undoAppliedMsg) tea.Cmd {
	if msg.err != nil {
		m.error = fmt.Sprintf("%s failed: %v", msg.direction, msg.err)
		return nil
	}

	if msg.direction == "undo" {
		m.redoStack = append(m.redoStack, msg.action)
		m.info = "Undid: " + msg.action.label
	} else {
		m.undoStack = append(m.undoStack, msg.action)
		m.info = "Redid: " + msg.action.label
	}
	m.error = ""
	return loadMyPlantsCmd(m.ctx, m.db)
}
