package command

import (
	"time"

	"github.com/hmaru/subedit/internal/document"
	"github.com/hmaru/subedit/internal/history"
	"github.com/hmaru/subedit/internal/timecode"
)

// timing bounds for a line created from transcript spans, matching
// common subtitle display conventions
const (
	createMinDuration = time.Second
	createMaxDuration = 7 * time.Second
	createPerRune     = 60 * time.Millisecond
)

// CanCreate reports whether a span run is available to bind.
func CanCreate(c *Context, fromSpan, toSpan int) bool {
	if c.Subtitle == nil || c.Subtitle.Transcript == nil {
		return false
	}
	return fromSpan >= 0 && toSpan >= fromSpan && toSpan < c.Subtitle.Transcript.Len()
}

// Create binds the contiguous span run [fromSpan, toSpan] into a new
// trailing line starting at the given time. The line's duration is
// estimated from its character count when end is zero.
func Create(c *Context, fromSpan, toSpan int, start, end time.Duration) *document.Line {
	if !CanCreate(c, fromSpan, toSpan) {
		return nil
	}

	content, err := c.Subtitle.Transcript.BindRun(fromSpan, toSpan)
	if err != nil {
		return nil
	}

	if end <= start {
		end = start + estimateDuration(content)
	}

	line := c.Subtitle.Append()
	line.Apply(document.LineData{Start: start, End: end, Content: content})
	line.SetOriginal()

	c.push(history.NewCreateLine(fromSpan, toSpan, start, end, content))
	return line
}

// QuickCreate binds the next unbound span run, the quick-mode trigger
// behavior.
func QuickCreate(c *Context, at time.Duration) *document.Line {
	if c.Subtitle == nil || c.Subtitle.Transcript == nil {
		return nil
	}
	from, to, ok := c.Subtitle.Transcript.NextUnboundRun(0)
	if !ok {
		return nil
	}
	return Create(c, from, to, at, 0)
}

func estimateDuration(content string) time.Duration {
	d := timecode.RoundCenti(time.Duration(len([]rune(content))) * createPerRune)
	if d < createMinDuration {
		return createMinDuration
	}
	if d > createMaxDuration {
		return createMaxDuration
	}
	return d
}

// CanInsert reports whether an insert anchor is resolvable.
func CanInsert(c *Context) bool {
	return c.anchor(false) != nil
}

// InsertBefore creates an empty line immediately before the focused
// line, or before the first line of the selection.
func InsertBefore(c *Context) *document.Line {
	target := c.anchor(false)
	if target == nil {
		return nil
	}
	line := c.Subtitle.InsertAt(target.Index - 1)
	c.push(history.NewInsertLine(line.Index))
	return line
}

// InsertAfter creates an empty line immediately after the focused
// line, or after the last line of the selection.
func InsertAfter(c *Context) *document.Line {
	target := c.anchor(true)
	if target == nil {
		return nil
	}
	line := c.Subtitle.InsertAt(target.Index)
	c.push(history.NewInsertLine(line.Index))
	return line
}
