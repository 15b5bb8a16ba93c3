package history

import (
	"encoding/json"

	"github.com/hmaru/subedit/internal/document"
)

// Action tags one history entry with the command that produced it.
// The values are the wire format of the persisted edit log, including
// the original "margeLine" spelling.
type Action string

const (
	ActionCreateLine   Action = "createLine"
	ActionInsertLine   Action = "insertLine"
	ActionDeleteLines  Action = "deleteLines"
	ActionUpdateLine   Action = "updateLine"
	ActionUpdateLines  Action = "updateLines"
	ActionShiftLines   Action = "shiftLines"
	ActionSplitLine    Action = "splitLine"
	ActionMargeLine    Action = "margeLine"
	ActionRecreateTime Action = "recreateTime"
)

// History is one reversible record of a command's effect. Undo and
// Redo hold the backward and forward mutation; each entry is
// self-sufficient and assumes nothing about whether its neighbours
// have run.
type History interface {
	Action() Action

	Undo(sub *document.Subtitle) error
	Redo(sub *document.Subtitle) error

	// UndoExecuted reports whether the entry currently represents
	// reverted state, used to restore the cursor when rehydrating a
	// persisted log.
	UndoExecuted() bool
	SetUndoExecuted(v bool)

	// MarshalData serializes the action-specific payload.
	MarshalData() (json.RawMessage, error)
}

// base carries the undoExecuted flag shared by all entries.
type base struct {
	undoExecuted bool
}

func (b *base) UndoExecuted() bool     { return b.undoExecuted }
func (b *base) SetUndoExecuted(v bool) { b.undoExecuted = v }

// indexedData pairs a line snapshot with the line's index, the unit of
// every multi-line payload.
type indexedData struct {
	Index int               `json:"index"`
	Data  document.LineData `json:"lineData"`
}

func snapshotLines(lines []*document.Line) []indexedData {
	out := make([]indexedData, len(lines))
	for i, l := range lines {
		out[i] = indexedData{Index: l.Index, Data: l.Snapshot()}
	}
	return out
}
