package document

import (
	"encoding/json"
	"time"

	"github.com/hmaru/subedit/internal/timecode"
)

// WordSegment is a single word with its start time, supplied by an
// external recognition feed and carried on a Line for sub-line timing.
type WordSegment struct {
	Word  string
	Start time.Duration
}

type wordSegmentJSON struct {
	Word  string `json:"word"`
	Start string `json:"start"`
}

func (w WordSegment) MarshalJSON() ([]byte, error) {
	return json.Marshal(wordSegmentJSON{
		Word:  w.Word,
		Start: timecode.Format(w.Start),
	})
}

func (w *WordSegment) UnmarshalJSON(data []byte) error {
	var raw wordSegmentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	start, err := timecode.Parse(raw.Start)
	if err != nil {
		return err
	}
	w.Word = raw.Word
	w.Start = start
	return nil
}

// CloneSegments deep-copies a word segment slice; nil stays nil.
func CloneSegments(segs []WordSegment) []WordSegment {
	if segs == nil {
		return nil
	}
	out := make([]WordSegment, len(segs))
	copy(out, segs)
	return out
}

// SegmentsEqual compares two segment slices by value.
func SegmentsEqual(a, b []WordSegment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// JoinSegments concatenates segment words into display text.
func JoinSegments(segs []WordSegment) string {
	var out string
	for _, s := range segs {
		out += s.Word
	}
	return out
}
