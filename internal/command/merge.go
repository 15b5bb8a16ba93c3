package command

import (
	"fmt"

	"github.com/hmaru/subedit/internal/document"
	"github.com/hmaru/subedit/internal/history"
)

// CanMerge reports whether the targeted lines can merge.
func CanMerge(c *Context, lines []*document.Line) bool {
	return len(targets(c, lines)) >= 2
}

// Merge absorbs the targeted lines into the lowest-index one. A
// non-adjacent selection also absorbs every line in between, which the
// user must confirm first; declining aborts with no mutation. All
// absorbed lines, passed-over included, are recorded so one undo
// restores them. If the surviving line was mid-edit, editing focus
// stays on it.
func Merge(c *Context, lines []*document.Line) *document.Line {
	selected := targets(c, lines)
	if len(selected) < 2 {
		return nil
	}

	first := selected[0].Index
	last := selected[len(selected)-1].Index

	if last-first+1 > len(selected) {
		msg := fmt.Sprintf("merging lines %d-%d will also absorb the %d line(s) between them",
			first+1, last+1, last-first+1-len(selected))
		if !c.confirm(msg) {
			return nil
		}
	}

	// the merge span is the full contiguous range
	span := make([]*document.Line, 0, last-first+1)
	for i := first; i <= last; i++ {
		span = append(span, c.Subtitle.Line(i))
	}

	wasEditing := c.Editing != nil && c.Editing.Index >= first && c.Editing.Index <= last

	h := history.NewMargeLine(first, span)

	datas := make([]document.LineData, len(span))
	for i, l := range span {
		datas[i] = l.Snapshot()
	}

	survivor := span[0]
	for i := len(span) - 1; i >= 1; i-- {
		if c.Editing == span[i] {
			c.Editing = nil
		}
		c.Subtitle.Delete(span[i])
	}
	survivor.Apply(document.MergeData(datas))
	survivor.Selected = false
	c.Selection = nil

	if wasEditing {
		c.Editing = survivor
		survivor.Editing = true
		c.Caret = len([]rune(survivor.Content))
	}

	c.push(h)
	return survivor
}
