package command

import (
	"github.com/hmaru/subedit/internal/document"
	"github.com/hmaru/subedit/internal/history"
)

// CanSplit reports whether the editing line splits at the caret.
func CanSplit(c *Context) bool {
	if c.Editing == nil || c.Editing.Index < 0 {
		return false
	}
	_, _, ok := document.SplitData(c.Editing.Snapshot(), c.Caret)
	return ok
}

// Split divides the editing line at the active caret position. The
// second half becomes a new line directly after the first.
func Split(c *Context) *document.Line {
	if c.Editing == nil || c.Editing.Index < 0 {
		return nil
	}
	line := c.Editing
	first, second, ok := document.SplitData(line.Snapshot(), c.Caret)
	if !ok {
		return nil
	}

	line.Apply(first)
	next := c.Subtitle.InsertAt(line.Index)
	next.Apply(second)
	next.SetOriginal()

	c.push(history.NewSplitLine(line.Index, c.Caret))
	return next
}
