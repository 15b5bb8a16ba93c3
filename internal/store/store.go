// Package store reads and writes the persisted subtitle document: the
// line records, a cached SRT rendering, and the full edit log so a
// session resumes with undo/redo intact.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hmaru/subedit/internal/document"
	"github.com/hmaru/subedit/internal/format"
	"github.com/hmaru/subedit/internal/history"
	"github.com/hmaru/subedit/internal/logging"
	"github.com/hmaru/subedit/internal/timecode"
)

// LineRecord is the persistence form of one line. Timecodes are
// formatted h:mm:ss.fff.
type LineRecord struct {
	Start                string                 `json:"start"`
	End                  string                 `json:"end"`
	Content              string                 `json:"content"`
	OriginalContent      string                 `json:"originalContent"`
	Format               string                 `json:"format,omitempty"`
	WordSegments         []document.WordSegment `json:"wordSegments,omitempty"`
	OriginalWordSegments []document.WordSegment `json:"originalWordSegments,omitempty"`
}

// Document is the persisted subtitle document.
type Document struct {
	Header         string                  `json:"header,omitempty"`
	Lines          []LineRecord            `json:"lines"`
	SRT            string                  `json:"srt"`
	Transcript     string                  `json:"transcript,omitempty"`
	ModifiedStates []history.ModifiedState `json:"modifiedStates"`
}

// FromSubtitle projects the live document pair and its history log
// into persistence form, refreshing the cached SRT rendering.
func FromSubtitle(sub *document.Subtitle, log *history.Log, header string) (*Document, error) {
	doc := &Document{Header: header}

	entries := make([]format.Entry, 0, sub.Len())
	for _, l := range sub.Lines() {
		doc.Lines = append(doc.Lines, LineRecord{
			Start:                timecode.Format(l.Start),
			End:                  timecode.Format(l.End),
			Content:              l.Content,
			OriginalContent:      l.OriginalContent,
			WordSegments:         l.WordSegments,
			OriginalWordSegments: l.OriginalWordSegments,
		})
		entries = append(entries, format.Entry{Start: l.Start, End: l.End, Text: l.Content})
	}

	srt, err := format.Render(entries, format.FormatSRT)
	if err != nil {
		return nil, fmt.Errorf("render srt cache: %w", err)
	}
	doc.SRT = srt

	if sub.Transcript != nil {
		doc.Transcript = sub.Transcript.Plain()
	}

	if log != nil {
		states, err := log.Encode()
		if err != nil {
			return nil, fmt.Errorf("encode edit log: %w", err)
		}
		doc.ModifiedStates = states
	}
	return doc, nil
}

// ToSubtitle rehydrates a persisted document: the line array, the
// transcript pool, and the history log with its cursor restored.
func ToSubtitle(doc *Document, logg *logging.Logger) (*document.Subtitle, *history.Log, error) {
	sub := document.NewSubtitle()
	for i, rec := range doc.Lines {
		start, err := timecode.Parse(rec.Start)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d start: %w", i, err)
		}
		end, err := timecode.Parse(rec.End)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d end: %w", i, err)
		}
		line := sub.Append()
		line.Apply(document.LineData{
			Start:        start,
			End:          end,
			Content:      rec.Content,
			WordSegments: rec.WordSegments,
		})
		line.OriginalContent = rec.OriginalContent
		line.OriginalWordSegments = document.CloneSegments(rec.OriginalWordSegments)
	}
	sub.Transcript.Load(doc.Transcript)

	log := history.DecodeLog(doc.ModifiedStates, logg)
	return sub, log, nil
}

// Load reads a persisted document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &doc, nil
}

// Save writes a persisted document to disk.
func Save(doc *Document, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}
