package history

import (
	"errors"

	"github.com/hmaru/subedit/internal/document"
	"github.com/hmaru/subedit/internal/logging"
)

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Log is the ordered history of a subtitle with a single cursor.
// index points at the most recent applied entry; -1 means nothing to
// undo. Pushing while the cursor sits before the tail discards the
// stale future entries: branching history is not supported.
type Log struct {
	entries []History
	index   int
}

func NewLog() *Log {
	return &Log{index: -1}
}

func (l *Log) Len() int   { return len(l.entries) }
func (l *Log) Index() int { return l.index }

func (l *Log) CanUndo() bool { return l.index >= 0 }
func (l *Log) CanRedo() bool { return l.index < len(l.entries)-1 }

// Push appends an entry for a command that has already mutated the
// document, truncating any redoable tail first.
func (l *Log) Push(h History) {
	if h == nil {
		return
	}
	l.entries = l.entries[:l.index+1]
	l.entries = append(l.entries, h)
	l.index = len(l.entries) - 1
}

// Undo reverts the entry under the cursor and moves the cursor back.
func (l *Log) Undo(sub *document.Subtitle) error {
	if !l.CanUndo() {
		return ErrNothingToUndo
	}
	h := l.entries[l.index]
	if err := h.Undo(sub); err != nil {
		return err
	}
	h.SetUndoExecuted(true)
	l.index--
	return nil
}

// Redo re-applies the entry after the cursor and moves the cursor
// forward.
func (l *Log) Redo(sub *document.Subtitle) error {
	if !l.CanRedo() {
		return ErrNothingToRedo
	}
	h := l.entries[l.index+1]
	if err := h.Redo(sub); err != nil {
		return err
	}
	h.SetUndoExecuted(false)
	l.index++
	return nil
}

// Encode projects the whole log into its persistence form.
func (l *Log) Encode() ([]ModifiedState, error) {
	return Encode(l.entries)
}

// DecodeLog rebuilds a log from its persistence form. The cursor is
// restored to the last entry still in applied state, so a resumed
// session matches the log.
func DecodeLog(states []ModifiedState, log *logging.Logger) *Log {
	entries := Decode(states, log)
	index := -1
	for i, h := range entries {
		if !h.UndoExecuted() {
			index = i
		}
	}
	return &Log{entries: entries, index: index}
}
