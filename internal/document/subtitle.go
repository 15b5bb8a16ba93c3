package document

import "time"

// Subtitle owns the ordered line array and its sibling transcript.
// Line indices stay contiguous 0..N-1 after every mutation; all
// mutation goes through the command layer, which is the sole writer.
type Subtitle struct {
	lines      []*Line
	Transcript *Transcript
}

func NewSubtitle() *Subtitle {
	return &Subtitle{Transcript: NewTranscript()}
}

func (s *Subtitle) Len() int {
	return len(s.lines)
}

func (s *Subtitle) Line(i int) *Line {
	if i < 0 || i >= len(s.lines) {
		return nil
	}
	return s.lines[i]
}

// Lines returns the live line slice; callers must not mutate it.
func (s *Subtitle) Lines() []*Line {
	return s.lines
}

// InsertAt creates an empty line immediately after index, or at the
// head when index < 0, shifting every following index up by one.
func (s *Subtitle) InsertAt(index int) *Line {
	at := index + 1
	if at < 0 {
		at = 0
	}
	if at > len(s.lines) {
		at = len(s.lines)
	}
	line := &Line{Index: at}
	s.lines = append(s.lines[:at], append([]*Line{line}, s.lines[at:]...)...)
	s.renumber(at + 1)
	return line
}

// Append creates an empty trailing line.
func (s *Subtitle) Append() *Line {
	return s.InsertAt(len(s.lines) - 1)
}

// Delete removes a line and renumbers everything after it. The removed
// instance is marked with Index -1 and never reused.
func (s *Subtitle) Delete(line *Line) bool {
	if line == nil || line.Index < 0 || line.Index >= len(s.lines) {
		return false
	}
	if s.lines[line.Index] != line {
		return false
	}
	at := line.Index
	s.lines = append(s.lines[:at], s.lines[at+1:]...)
	s.renumber(at)
	line.Index = -1
	return true
}

// DeleteAt removes the line at index i.
func (s *Subtitle) DeleteAt(i int) bool {
	return s.Delete(s.Line(i))
}

func (s *Subtitle) renumber(from int) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(s.lines); i++ {
		s.lines[i].Index = i
	}
}

// Snapshots captures every line in index order.
func (s *Subtitle) Snapshots() []LineData {
	out := make([]LineData, len(s.lines))
	for i, l := range s.lines {
		out[i] = l.Snapshot()
	}
	return out
}

// LineAt returns the line whose [start, end) interval contains t.
func (s *Subtitle) LineAt(t time.Duration) *Line {
	for _, l := range s.lines {
		if l.Contains(t) {
			return l
		}
	}
	return nil
}
