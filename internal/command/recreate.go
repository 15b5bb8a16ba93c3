package command

import (
	"github.com/hmaru/subedit/internal/history"
)

// CanRecreate reports whether there is anything to rebuild from.
func CanRecreate(c *Context) bool {
	if c.Subtitle == nil {
		return false
	}
	return c.Subtitle.Len() > 0 || c.Subtitle.Transcript.Len() > 0
}

// RecreateTimeline destructively clears every line and reloads the
// transcript from a flat text blob: the remaining transcript content,
// or the concatenation of the line contents when the transcript is
// empty. The full pre-state is recorded so undo restores both sides.
func RecreateTimeline(c *Context) bool {
	if !CanRecreate(c) {
		return false
	}

	h := history.NewRecreateTime(c.Subtitle.Snapshots(), c.Subtitle.Transcript.Plain())

	for c.Subtitle.Len() > 0 {
		c.Subtitle.DeleteAt(c.Subtitle.Len() - 1)
	}
	c.Subtitle.Transcript.Load(h.RebuildBlob())
	c.Editing = nil
	c.Selection = nil

	c.push(h)
	return true
}
