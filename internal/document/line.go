package document

import (
	"encoding/json"
	"time"

	"github.com/hmaru/subedit/internal/timecode"
)

// Line is a single timed subtitle entry. Index mirrors the line's
// position in its Subtitle and is kept contiguous by the Subtitle;
// Index < 0 marks a removed line.
type Line struct {
	Index   int
	Start   time.Duration
	End     time.Duration
	Content string

	// per-word timing when the recognition feed supplied it
	WordSegments []WordSegment

	// pristine baseline for "recover to original"
	OriginalContent      string
	OriginalWordSegments []WordSegment

	// transient UI flags, never persisted
	Selected bool
	Playing  bool
	Editing  bool
}

// LineData is a value snapshot of the persistent fields of a Line,
// the before/after unit of every history payload.
type LineData struct {
	Start        time.Duration
	End          time.Duration
	Content      string
	WordSegments []WordSegment
}

// LineState captures the transient flags of a line at command time so
// undo can restore selection and editing focus.
type LineState struct {
	Selected bool `json:"selected"`
	Editing  bool `json:"editing"`
}

type lineDataJSON struct {
	Start        string        `json:"start"`
	End          string        `json:"end"`
	Content      string        `json:"content"`
	WordSegments []WordSegment `json:"wordSegments,omitempty"`
}

func (d LineData) MarshalJSON() ([]byte, error) {
	return json.Marshal(lineDataJSON{
		Start:        timecode.Format(d.Start),
		End:          timecode.Format(d.End),
		Content:      d.Content,
		WordSegments: d.WordSegments,
	})
}

func (d *LineData) UnmarshalJSON(data []byte) error {
	var raw lineDataJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	start, err := timecode.Parse(raw.Start)
	if err != nil {
		return err
	}
	end, err := timecode.Parse(raw.End)
	if err != nil {
		return err
	}
	d.Start = start
	d.End = end
	d.Content = raw.Content
	d.WordSegments = raw.WordSegments
	return nil
}

// Equal compares two snapshots by value.
func (d LineData) Equal(o LineData) bool {
	return d.Start == o.Start &&
		d.End == o.End &&
		d.Content == o.Content &&
		SegmentsEqual(d.WordSegments, o.WordSegments)
}

// Snapshot captures the line's persistent fields.
func (l *Line) Snapshot() LineData {
	return LineData{
		Start:        l.Start,
		End:          l.End,
		Content:      l.Content,
		WordSegments: CloneSegments(l.WordSegments),
	}
}

// State captures the line's transient flags.
func (l *Line) State() LineState {
	return LineState{Selected: l.Selected, Editing: l.Editing}
}

// Apply overwrites the line from a snapshot. It reports whether the
// line actually changed; a removed line (Index < 0) is left untouched.
func (l *Line) Apply(data LineData) (edited bool) {
	if l.Index < 0 {
		return false
	}
	if l.Snapshot().Equal(data) {
		return false
	}
	l.Start = data.Start
	l.End = data.End
	l.Content = data.Content
	l.WordSegments = CloneSegments(data.WordSegments)
	return true
}

// SetOriginal records the pristine baseline used by RecoverOriginal.
func (l *Line) SetOriginal() {
	l.OriginalContent = l.Content
	l.OriginalWordSegments = CloneSegments(l.WordSegments)
}

// RecoverOriginal restores the pristine baseline, if one was recorded.
func (l *Line) RecoverOriginal() (edited bool) {
	if l.OriginalContent == "" && l.OriginalWordSegments == nil {
		return false
	}
	return l.Apply(LineData{
		Start:        l.Start,
		End:          l.End,
		Content:      l.OriginalContent,
		WordSegments: CloneSegments(l.OriginalWordSegments),
	})
}

// Duration returns the elapsed time of the line.
func (l *Line) Duration() time.Duration {
	return timecode.Elapsed(l.Start, l.End)
}

// Contains reports whether t falls inside [Start, End).
func (l *Line) Contains(t time.Duration) bool {
	return t >= l.Start && t < l.End
}
