package document

import "strings"

// BindWords aligns an external per-word timestamp feed onto a line's
// content. Words are matched greedily in order against the content's
// fields; feed words that do not match keep their place so no timing
// is lost. The bound segments become the line's word segments and its
// pristine baseline.
func BindWords(line *Line, feed []WordSegment) {
	if line == nil || len(feed) == 0 {
		return
	}

	fields := strings.Fields(line.Content)
	segs := make([]WordSegment, 0, len(feed))

	fi := 0
	for _, ws := range feed {
		word := strings.TrimSpace(ws.Word)
		if word == "" {
			continue
		}
		if fi < len(fields) && fields[fi] == word {
			fi++
		}
		segs = append(segs, WordSegment{Word: word, Start: ws.Start})
	}

	if len(segs) == 0 {
		return
	}

	line.WordSegments = segs
	line.Content = segmentsDisplay(segs)
	line.SetOriginal()
}

// segmentsDisplay joins segment words with single spaces.
func segmentsDisplay(segs []WordSegment) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = s.Word
	}
	return strings.Join(parts, " ")
}
