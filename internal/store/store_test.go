package store

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hmaru/subedit/internal/document"
	"github.com/hmaru/subedit/internal/history"
	"github.com/hmaru/subedit/internal/logging"
)

func TestDocumentRoundTrip(t *testing.T) {
	sub := document.NewSubtitle()
	sub.Transcript.Load("unused transcript words")

	a := sub.Append()
	a.Apply(document.LineData{Start: time.Second, End: 2 * time.Second, Content: "Hello"})
	a.SetOriginal()
	b := sub.Append()
	b.Apply(document.LineData{
		Start:   2 * time.Second,
		End:     3 * time.Second,
		Content: "brave world",
		WordSegments: []document.WordSegment{
			{Word: "brave", Start: 2 * time.Second},
			{Word: "world", Start: 2500 * time.Millisecond},
		},
	})
	b.SetOriginal()

	log := history.NewLog()
	h := history.NewInsertLine(2)
	if err := h.Redo(sub); err != nil {
		t.Fatal(err)
	}
	log.Push(h)
	if err := log.Undo(sub); err != nil {
		t.Fatal(err)
	}

	doc, err := FromSubtitle(sub, log, "episode 1")
	if err != nil {
		t.Fatalf("FromSubtitle: %v", err)
	}
	if doc.Lines[0].Start != "0:00:01.000" {
		t.Errorf("start record = %q", doc.Lines[0].Start)
	}
	if !strings.Contains(doc.SRT, "00:00:01,000 --> 00:00:02,000") {
		t.Errorf("srt cache missing timestamp:\n%s", doc.SRT)
	}
	if len(doc.ModifiedStates) != 1 || !doc.ModifiedStates[0].UndoExecuted {
		t.Errorf("modified states = %+v", doc.ModifiedStates)
	}

	path := filepath.Join(t.TempDir(), "doc.json")
	if err := Save(doc, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	sub2, log2, err := ToSubtitle(loaded, logging.NewNop())
	if err != nil {
		t.Fatalf("ToSubtitle: %v", err)
	}
	if sub2.Len() != 2 {
		t.Fatalf("line count = %d", sub2.Len())
	}
	got := sub2.Line(1)
	if got.Content != "brave world" || len(got.WordSegments) != 2 {
		t.Errorf("line 1 = %+v", got.Snapshot())
	}
	if got.WordSegments[1].Start != 2500*time.Millisecond {
		t.Errorf("segment start = %v", got.WordSegments[1].Start)
	}
	if sub2.Transcript.Plain() != "unused transcript words" {
		t.Errorf("transcript = %q", sub2.Transcript.Plain())
	}

	// the resumed log's cursor matches: the insert is redoable
	if log2.CanUndo() {
		t.Error("resumed log should have nothing to undo")
	}
	if !log2.CanRedo() {
		t.Fatal("resumed log should allow redo")
	}
	if err := log2.Redo(sub2); err != nil {
		t.Fatalf("redo on resumed log: %v", err)
	}
	if sub2.Len() != 3 {
		t.Errorf("line count after resumed redo = %d", sub2.Len())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("loading a missing file should error")
	}
}
