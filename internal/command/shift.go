package command

import (
	"time"

	"github.com/hmaru/subedit/internal/document"
	"github.com/hmaru/subedit/internal/history"
)

// CanShift reports whether a shift would do anything.
func CanShift(c *Context, lines []*document.Line, offset time.Duration) bool {
	return offset != 0 && len(targets(c, lines)) > 0
}

// Shift adds a signed offset to the start and end of every targeted
// line, recording before/after pairs for exact undo.
func Shift(c *Context, lines []*document.Line, offset time.Duration) bool {
	batch := targets(c, lines)
	if offset == 0 || len(batch) == 0 {
		return false
	}

	h := history.NewShiftLines(batch)
	for _, l := range batch {
		l.Apply(document.LineData{
			Start:        l.Start + offset,
			End:          l.End + offset,
			Content:      l.Content,
			WordSegments: shiftSegments(l.WordSegments, offset),
		})
	}
	h.Commit(batch)

	c.push(h)
	return true
}

// ShiftAll shifts every line of the subtitle.
func ShiftAll(c *Context, offset time.Duration) bool {
	return Shift(c, c.Subtitle.Lines(), offset)
}

func shiftSegments(segs []document.WordSegment, offset time.Duration) []document.WordSegment {
	if segs == nil {
		return nil
	}
	out := make([]document.WordSegment, len(segs))
	for i, s := range segs {
		out[i] = document.WordSegment{Word: s.Word, Start: s.Start + offset}
	}
	return out
}

// CanCompensate reports whether any targeted line has a following gap.
func CanCompensate(c *Context, lines []*document.Line) bool {
	for _, l := range targets(c, lines) {
		if gapAfter(c.Subtitle, l) > 0 {
			return true
		}
	}
	return false
}

// Compensate extends each targeted line's end into the unused gap
// before its successor, up to maxGap when maxGap is positive. Lines
// without a successor are left untouched.
func Compensate(c *Context, lines []*document.Line, maxGap time.Duration) bool {
	batch := targets(c, lines)

	changed := make([]*document.Line, 0, len(batch))
	for _, l := range batch {
		if gap := cappedGap(c.Subtitle, l, maxGap); gap > 0 {
			changed = append(changed, l)
		}
	}
	if len(changed) == 0 {
		return false
	}

	h := history.NewUpdateLines(changed)
	for _, l := range changed {
		l.End += cappedGap(c.Subtitle, l, maxGap)
	}
	h.Commit(changed)

	c.push(h)
	return true
}

func gapAfter(sub *document.Subtitle, l *document.Line) time.Duration {
	next := sub.Line(l.Index + 1)
	if next == nil {
		return 0
	}
	return next.Start - l.End
}

func cappedGap(sub *document.Subtitle, l *document.Line, maxGap time.Duration) time.Duration {
	gap := gapAfter(sub, l)
	if gap <= 0 {
		return 0
	}
	if maxGap > 0 && gap > maxGap {
		return maxGap
	}
	return gap
}
