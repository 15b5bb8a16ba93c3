package command

import (
	"github.com/hmaru/subedit/internal/document"
	"github.com/hmaru/subedit/internal/history"
)

// Update commits a single-line edit. A no-op change records nothing.
func Update(c *Context, line *document.Line, after document.LineData) bool {
	if line == nil || line.Index < 0 {
		return false
	}
	before := line.Snapshot()
	if !line.Apply(after) {
		return false
	}
	c.push(history.NewUpdateLine(line.Index, before, after))
	return true
}

// RecoverOriginal restores a line's pristine content, recorded as a
// regular update so it participates in undo/redo.
func RecoverOriginal(c *Context, line *document.Line) bool {
	if line == nil || line.Index < 0 {
		return false
	}
	before := line.Snapshot()
	if !line.RecoverOriginal() {
		return false
	}
	c.push(history.NewUpdateLine(line.Index, before, line.Snapshot()))
	return true
}
