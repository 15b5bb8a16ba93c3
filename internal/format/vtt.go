package format

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/hmaru/subedit/internal/timecode"
)

func renderVTT(entries []Entry) string {
	var sb strings.Builder

	sb.WriteString("WEBVTT\n\n")

	for i, e := range entries {
		// optional cue identifier
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00.000 --> 00:00:00.000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			timecode.FormatVTT(e.Start),
			timecode.FormatVTT(e.End)))

		sb.WriteString(e.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func parseVTT(content string) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(strings.NewReader(content))

	var current *Entry
	var textLines []string
	lineNum := 0
	headerParsed := false

	flush := func() {
		if current != nil && len(textLines) > 0 {
			current.Text = strings.Join(textLines, "\n")
			entries = append(entries, *current)
		}
		current = nil
		textLines = nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}

		trimmed := strings.TrimSpace(line)

		if !headerParsed {
			if strings.HasPrefix(trimmed, "WEBVTT") {
				headerParsed = true
				continue
			}
		}

		// skip NOTE and STYLE blocks up to their blank line
		if strings.HasPrefix(trimmed, "NOTE") || strings.HasPrefix(trimmed, "STYLE") {
			for scanner.Scan() {
				lineNum++
				if strings.TrimSpace(scanner.Text()) == "" {
					break
				}
			}
			continue
		}

		if trimmed == "" {
			flush()
			continue
		}

		matches := srtTimestampRegex.FindStringSubmatch(line)
		if len(matches) == 9 {
			flush()
			start, end, err := parseTimestampPair(matches)
			if err != nil {
				return nil, fmt.Errorf("invalid timestamp at line %d: %w", lineNum, err)
			}
			current = &Entry{Start: start, End: end}
			continue
		}

		if current != nil {
			textLines = append(textLines, line)
		}
		// anything else before a timestamp is a cue identifier; skip it
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading VTT content: %w", err)
	}
	return entries, nil
}
