// Package command holds one operation per user intent. Each command
// validates its preconditions, mutates the document model, and records
// the matching history entry. Unmet preconditions are silent no-ops
// returning a nil history, and every command exposes the same check as
// a Can predicate so the UI can probe availability.
package command

import (
	"github.com/hmaru/subedit/internal/document"
	"github.com/hmaru/subedit/internal/history"
)

// Context carries the state a command may need: the document pair, the
// history log, the single editing line, the current multi-selection,
// the caret within the editing line, and the confirmation hook for
// risky operations.
type Context struct {
	Subtitle *document.Subtitle
	Log      *history.Log

	Editing   *document.Line
	Selection []*document.Line
	Caret     int

	// Confirm is asked before a risky operation proceeds; declining
	// aborts the command with no mutation. A nil hook declines.
	Confirm func(message string) bool
}

func (c *Context) confirm(message string) bool {
	if c.Confirm == nil {
		return false
	}
	return c.Confirm(message)
}

// push records a completed command in the history log.
func (c *Context) push(h history.History) {
	if c.Log != nil {
		c.Log.Push(h)
	}
}

// selection returns the live multi-selection sorted by index, dropping
// removed lines.
func (c *Context) selection() []*document.Line {
	return sortLive(c.Selection)
}

// anchor resolves the line an insert targets: the editing line first,
// else an end of the selection.
func (c *Context) anchor(last bool) *document.Line {
	if c.Editing != nil && c.Editing.Index >= 0 {
		return c.Editing
	}
	sel := c.selection()
	if len(sel) == 0 {
		return nil
	}
	if last {
		return sel[len(sel)-1]
	}
	return sel[0]
}
