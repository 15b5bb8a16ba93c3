package format

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hmaru/subedit/internal/timecode"
)

var srtTimestampRegex = regexp.MustCompile(
	`(\d{1,2}):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d{1,2}):(\d{2}):(\d{2})[,.](\d{3})`,
)

func renderSRT(entries []Entry) string {
	var sb strings.Builder
	for i, e := range entries {
		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			timecode.FormatSRT(e.Start),
			timecode.FormatSRT(e.End)))

		sb.WriteString(e.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func parseSRT(content string) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(strings.NewReader(content))

	var current *Entry
	var textLines []string
	lineNum := 0

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

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if current == nil {
			if _, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
				current = &Entry{}
				continue
			}
		}

		if current != nil && current.Start == 0 && current.End == 0 {
			matches := srtTimestampRegex.FindStringSubmatch(line)
			if len(matches) == 9 {
				start, end, err := parseTimestampPair(matches)
				if err != nil {
					return nil, fmt.Errorf("invalid timestamp at line %d: %w", lineNum, err)
				}
				current.Start = start
				current.End = end
				continue
			}
		}

		if current != nil {
			textLines = append(textLines, line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading SRT content: %w", err)
	}
	return entries, nil
}

func parseTimestampPair(matches []string) (start, end time.Duration, err error) {
	start, err = timecode.Parse(fmt.Sprintf("%s:%s:%s.%s", matches[1], matches[2], matches[3], matches[4]))
	if err != nil {
		return 0, 0, err
	}
	end, err = timecode.Parse(fmt.Sprintf("%s:%s:%s.%s", matches[5], matches[6], matches[7], matches[8]))
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
