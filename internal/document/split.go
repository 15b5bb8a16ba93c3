package document

import (
	"time"
	"unicode/utf8"

	"github.com/hmaru/subedit/internal/timecode"
)

// SplitData splits a line snapshot at a caret rune offset into two
// snapshots. The result is deterministic so history replay can re-run
// it. ok is false when the caret admits no split.
//
// With word segments the caret is mapped onto the segment array: the
// first half keeps the segments up to the caret, the second half
// starts at the next segment and the boundary time is that segment's
// start. A caret inside the last segment cannot split.
//
// Without word segments the boundary is apportioned proportionally to
// the character ratio of the split point, rounded to 1/100 second.
func SplitData(d LineData, caret int) (first, second LineData, ok bool) {
	if len(d.WordSegments) > 0 {
		return splitBySegments(d, caret)
	}
	return splitByRatio(d, caret)
}

func splitBySegments(d LineData, caret int) (first, second LineData, ok bool) {
	k := segmentAtCaret(d.WordSegments, caret)
	if k < 0 || k >= len(d.WordSegments)-1 {
		return LineData{}, LineData{}, false
	}

	firstSegs := CloneSegments(d.WordSegments[:k+1])
	secondSegs := CloneSegments(d.WordSegments[k+1:])
	boundary := secondSegs[0].Start

	first = LineData{
		Start:        d.Start,
		End:          boundary,
		Content:      segmentsDisplay(firstSegs),
		WordSegments: firstSegs,
	}
	second = LineData{
		Start:        boundary,
		End:          d.End,
		Content:      segmentsDisplay(secondSegs),
		WordSegments: secondSegs,
	}
	return first, second, true
}

func splitByRatio(d LineData, caret int) (first, second LineData, ok bool) {
	runes := []rune(d.Content)
	total := len(runes)
	if caret <= 0 || caret >= total {
		return LineData{}, LineData{}, false
	}

	boundary := d.Start + timecode.Scale(Elapsed(d), caret, total)

	first = LineData{
		Start:   d.Start,
		End:     boundary,
		Content: string(runes[:caret]),
	}
	second = LineData{
		Start:   boundary,
		End:     d.End,
		Content: string(runes[caret:]),
	}
	return first, second, true
}

// segmentAtCaret maps a rune offset in the space-joined segment text
// onto a segment index. Offsets past the text map to the last segment.
func segmentAtCaret(segs []WordSegment, caret int) int {
	if len(segs) == 0 || caret < 0 {
		return -1
	}
	cum := 0
	for i, s := range segs {
		cum += utf8.RuneCountInString(s.Word)
		if i < len(segs)-1 {
			cum++ // joining space
		}
		if caret <= cum {
			return i
		}
	}
	return len(segs) - 1
}

// MergeData combines ordered line snapshots into one. When every input
// carries word segments the merged segments are their concatenation
// and the content is re-derived from them; otherwise the raw contents
// are concatenated. The merged interval spans first start to last end.
func MergeData(datas []LineData) LineData {
	if len(datas) == 0 {
		return LineData{}
	}
	if len(datas) == 1 {
		return datas[0]
	}

	allSegments := true
	for _, d := range datas {
		if len(d.WordSegments) == 0 {
			allSegments = false
			break
		}
	}

	merged := LineData{
		Start: datas[0].Start,
		End:   datas[len(datas)-1].End,
	}

	if allSegments {
		for _, d := range datas {
			merged.WordSegments = append(merged.WordSegments, d.WordSegments...)
		}
		merged.Content = segmentsDisplay(merged.WordSegments)
		return merged
	}

	for _, d := range datas {
		merged.Content += d.Content
	}
	return merged
}

// Elapsed returns the snapshot's duration, clamped at zero.
func Elapsed(d LineData) time.Duration {
	return timecode.Elapsed(d.Start, d.End)
}
