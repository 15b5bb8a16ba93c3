package command

import (
	"strings"

	"github.com/hmaru/subedit/internal/document"
	"github.com/hmaru/subedit/internal/history"
)

// CanReplace reports whether any targeted line contains old.
func CanReplace(c *Context, lines []*document.Line, old string) bool {
	if old == "" {
		return false
	}
	for _, l := range targets(c, lines) {
		if strings.Contains(l.Content, old) {
			return true
		}
	}
	return false
}

// Replace performs a textual substring replacement across the targeted
// lines and records the whole batch as one history entry.
func Replace(c *Context, lines []*document.Line, old, new string) int {
	if old == "" {
		return 0
	}

	batch := targets(c, lines)
	changed := make([]*document.Line, 0, len(batch))
	for _, l := range batch {
		if strings.Contains(l.Content, old) {
			changed = append(changed, l)
		}
	}
	if len(changed) == 0 {
		return 0
	}

	h := history.NewUpdateLines(changed)
	for _, l := range changed {
		data := l.Snapshot()
		data.Content = strings.ReplaceAll(data.Content, old, new)
		for i := range data.WordSegments {
			data.WordSegments[i].Word = strings.ReplaceAll(data.WordSegments[i].Word, old, new)
		}
		l.Apply(data)
	}
	h.Commit(changed)

	c.push(h)
	return len(changed)
}
