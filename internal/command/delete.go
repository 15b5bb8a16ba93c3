package command

import (
	"sort"

	"github.com/hmaru/subedit/internal/document"
	"github.com/hmaru/subedit/internal/history"
)

// CanDelete reports whether any deletable line is targeted.
func CanDelete(c *Context, lines []*document.Line) bool {
	return len(targets(c, lines)) > 0
}

// Delete removes the given lines, or the current selection when lines
// is nil. The whole batch becomes one history entry so a single undo
// restores every line.
func Delete(c *Context, lines []*document.Line) bool {
	batch := targets(c, lines)
	if len(batch) == 0 {
		return false
	}

	h := history.NewDeleteLines(batch)

	// delete from the highest index down so remaining targets keep
	// valid indices mid-batch
	for i := len(batch) - 1; i >= 0; i-- {
		if c.Editing == batch[i] {
			c.Editing = nil
		}
		c.Subtitle.Delete(batch[i])
	}
	c.Selection = nil

	c.push(h)
	return true
}

// targets resolves the explicit list or falls back to the selection,
// keeping only live lines in index order.
func targets(c *Context, lines []*document.Line) []*document.Line {
	if lines == nil {
		return c.selection()
	}
	return sortLive(lines)
}

func sortLive(lines []*document.Line) []*document.Line {
	out := make([]*document.Line, 0, len(lines))
	for _, l := range lines {
		if l != nil && l.Index >= 0 {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}
