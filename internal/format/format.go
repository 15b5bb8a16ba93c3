package format

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Format names a supported subtitle file format.
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
)

// Entry is one parsed or renderable subtitle cue.
type Entry struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// FromExtension picks a format from a file extension, defaulting to SRT.
func FromExtension(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vtt":
		return FormatVTT
	default:
		return FormatSRT
	}
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "srt":
		return FormatSRT, nil
	case "vtt":
		return FormatVTT, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use srt or vtt", s)
	}
}

// Render produces the file content for entries in the given format.
func Render(entries []Entry, f Format) (string, error) {
	switch f {
	case FormatSRT:
		return renderSRT(entries), nil
	case FormatVTT:
		return renderVTT(entries), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", f)
	}
}

// Parse reads subtitle file content in the given format.
func Parse(content string, f Format) ([]Entry, error) {
	switch f {
	case FormatSRT:
		return parseSRT(content)
	case FormatVTT:
		return parseVTT(content)
	default:
		return nil, fmt.Errorf("unsupported format: %s", f)
	}
}
