package command

import (
	"testing"
	"time"

	"github.com/hmaru/subedit/internal/document"
	"github.com/hmaru/subedit/internal/history"
	"github.com/hmaru/subedit/internal/timecode"
)

func tc(t *testing.T, s string) time.Duration {
	t.Helper()
	d, err := timecode.Parse(s)
	if err != nil {
		t.Fatalf("bad timecode %q: %v", s, err)
	}
	return d
}

func newContext(datas ...document.LineData) *Context {
	sub := document.NewSubtitle()
	for _, d := range datas {
		line := sub.Append()
		line.Apply(d)
	}
	return &Context{Subtitle: sub, Log: history.NewLog()}
}

func checkContiguous(t *testing.T, sub *document.Subtitle) {
	t.Helper()
	for i, l := range sub.Lines() {
		if l.Index != i {
			t.Fatalf("line at position %d has index %d", i, l.Index)
		}
	}
}

func checkSnapshots(t *testing.T, sub *document.Subtitle, want []document.LineData) {
	t.Helper()
	got := sub.Snapshots()
	if len(got) != len(want) {
		t.Fatalf("line count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("line %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestMergeTwoLinesAndUndo(t *testing.T) {
	c := newContext(
		document.LineData{Start: tc(t, "0:00:01.000"), End: tc(t, "0:00:02.000"), Content: "Hello"},
		document.LineData{Start: tc(t, "0:00:02.000"), End: tc(t, "0:00:03.000"), Content: "World"},
	)
	before := c.Subtitle.Snapshots()

	survivor := Merge(c, []*document.Line{c.Subtitle.Line(0), c.Subtitle.Line(1)})
	if survivor == nil {
		t.Fatal("merge failed")
	}
	if c.Subtitle.Len() != 1 {
		t.Fatalf("line count = %d", c.Subtitle.Len())
	}
	got := survivor.Snapshot()
	if got.Content != "HelloWorld" ||
		got.Start != tc(t, "0:00:01.000") ||
		got.End != tc(t, "0:00:03.000") {
		t.Errorf("merged = %+v", got)
	}

	if err := c.Log.Undo(c.Subtitle); err != nil {
		t.Fatalf("undo: %v", err)
	}
	checkSnapshots(t, c.Subtitle, before)
	checkContiguous(t, c.Subtitle)
}

func TestMergeRequiresTwoLines(t *testing.T) {
	c := newContext(
		document.LineData{Start: 0, End: time.Second, Content: "only"},
	)
	if Merge(c, []*document.Line{c.Subtitle.Line(0)}) != nil {
		t.Error("single-line merge should be a no-op")
	}
	if c.Log.Len() != 0 {
		t.Error("no-op merge recorded history")
	}
}

func TestMergeNonAdjacent(t *testing.T) {
	datas := []document.LineData{
		{Start: 0, End: time.Second, Content: "a"},
		{Start: time.Second, End: 2 * time.Second, Content: "b"},
		{Start: 2 * time.Second, End: 3 * time.Second, Content: "c"},
	}

	// declining the confirmation aborts with no mutation
	c := newContext(datas...)
	c.Confirm = func(string) bool { return false }
	if Merge(c, []*document.Line{c.Subtitle.Line(0), c.Subtitle.Line(2)}) != nil {
		t.Fatal("declined merge should abort")
	}
	checkSnapshots(t, c.Subtitle, datas)
	if c.Log.Len() != 0 {
		t.Error("aborted merge recorded history")
	}

	// confirming absorbs the passed-over line, and undo restores it
	c = newContext(datas...)
	c.Confirm = func(string) bool { return true }
	survivor := Merge(c, []*document.Line{c.Subtitle.Line(0), c.Subtitle.Line(2)})
	if survivor == nil {
		t.Fatal("confirmed merge failed")
	}
	if survivor.Content != "abc" {
		t.Errorf("merged content = %q, want abc", survivor.Content)
	}
	if err := c.Log.Undo(c.Subtitle); err != nil {
		t.Fatalf("undo: %v", err)
	}
	checkSnapshots(t, c.Subtitle, datas)
}

func TestMergeKeepsEditingFocus(t *testing.T) {
	c := newContext(
		document.LineData{Start: 0, End: time.Second, Content: "ab"},
		document.LineData{Start: time.Second, End: 2 * time.Second, Content: "cd"},
	)
	c.Editing = c.Subtitle.Line(1)
	c.Editing.Editing = true

	survivor := Merge(c, []*document.Line{c.Subtitle.Line(0), c.Subtitle.Line(1)})
	if survivor == nil {
		t.Fatal("merge failed")
	}
	if c.Editing != survivor || !survivor.Editing {
		t.Error("editing focus not restored to survivor")
	}
	if c.Caret != len([]rune(survivor.Content)) {
		t.Errorf("caret = %d, want %d", c.Caret, len([]rune(survivor.Content)))
	}
}

func TestSplitProportional(t *testing.T) {
	c := newContext(
		document.LineData{Start: tc(t, "0:00:00.000"), End: tc(t, "0:00:10.000"), Content: "ABCDEFGHIJ"},
	)
	c.Editing = c.Subtitle.Line(0)
	c.Caret = 5

	second := Split(c)
	if second == nil {
		t.Fatal("split failed")
	}
	first := c.Subtitle.Line(0)
	if first.Content != "ABCDE" || second.Content != "FGHIJ" {
		t.Errorf("contents = %q / %q", first.Content, second.Content)
	}
	if first.End != tc(t, "0:00:05.000") || second.Start != tc(t, "0:00:05.000") {
		t.Errorf("boundary = %v / %v", first.End, second.Start)
	}
	checkContiguous(t, c.Subtitle)

	if err := c.Log.Undo(c.Subtitle); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if c.Subtitle.Len() != 1 || c.Subtitle.Line(0).Content != "ABCDEFGHIJ" {
		t.Errorf("undo left %+v", c.Subtitle.Snapshots())
	}
}

func TestSplitWithoutCaret(t *testing.T) {
	c := newContext(
		document.LineData{Start: 0, End: time.Second, Content: "abc"},
	)
	// no editing line resolvable: silent no-op
	if Split(c) != nil {
		t.Error("split without editing line should be nil")
	}
	if CanSplit(c) {
		t.Error("CanSplit without editing line")
	}

	c.Editing = c.Subtitle.Line(0)
	c.Caret = 0
	if Split(c) != nil {
		t.Error("split at caret 0 should be nil")
	}
	if c.Log.Len() != 0 {
		t.Error("no-op split recorded history")
	}
}

func TestSplitThenMergeReproducesLine(t *testing.T) {
	orig := document.LineData{Start: time.Second, End: 9 * time.Second, Content: "ABCDEFGH"}
	c := newContext(orig)
	c.Editing = c.Subtitle.Line(0)
	c.Caret = 3

	if Split(c) == nil {
		t.Fatal("split failed")
	}
	survivor := Merge(c, []*document.Line{c.Subtitle.Line(0), c.Subtitle.Line(1)})
	if survivor == nil {
		t.Fatal("merge failed")
	}
	got := survivor.Snapshot()
	if got.Content != orig.Content || got.Start != orig.Start || got.End != orig.End {
		t.Errorf("split+merge = %+v, want %+v", got, orig)
	}
}

func TestShiftAllAndUndo(t *testing.T) {
	c := newContext(
		document.LineData{Start: tc(t, "0:00:00.000"), End: tc(t, "0:00:01.000"), Content: "x"},
	)
	before := c.Subtitle.Snapshots()

	if !ShiftAll(c, 2500*time.Millisecond) {
		t.Fatal("shift failed")
	}
	l := c.Subtitle.Line(0)
	if l.Start != tc(t, "0:00:02.500") || l.End != tc(t, "0:00:03.500") {
		t.Errorf("shifted = [%v, %v]", l.Start, l.End)
	}

	if err := c.Log.Undo(c.Subtitle); err != nil {
		t.Fatalf("undo: %v", err)
	}
	checkSnapshots(t, c.Subtitle, before)
}

func TestShiftInverse(t *testing.T) {
	c := newContext(
		document.LineData{Start: time.Second, End: 2 * time.Second, Content: "a"},
		document.LineData{Start: 3 * time.Second, End: 4 * time.Second, Content: "b"},
	)
	before := c.Subtitle.Snapshots()

	if !ShiftAll(c, 700*time.Millisecond) {
		t.Fatal("shift failed")
	}
	if !ShiftAll(c, -700*time.Millisecond) {
		t.Fatal("inverse shift failed")
	}
	checkSnapshots(t, c.Subtitle, before)
}

func TestShiftNoOps(t *testing.T) {
	c := newContext(
		document.LineData{Start: 0, End: time.Second, Content: "a"},
	)
	if ShiftAll(c, 0) {
		t.Error("zero offset should be a no-op")
	}
	if Shift(c, nil, time.Second) {
		t.Error("empty selection should be a no-op")
	}
	if c.Log.Len() != 0 {
		t.Error("no-op shift recorded history")
	}
}

func TestDeleteBatchSingleUndo(t *testing.T) {
	datas := []document.LineData{
		{Start: 0, End: time.Second, Content: "a"},
		{Start: time.Second, End: 2 * time.Second, Content: "b"},
		{Start: 2 * time.Second, End: 3 * time.Second, Content: "c"},
	}
	c := newContext(datas...)
	c.Selection = []*document.Line{c.Subtitle.Line(0), c.Subtitle.Line(1), c.Subtitle.Line(2)}

	if !Delete(c, nil) {
		t.Fatal("delete failed")
	}
	if c.Subtitle.Len() != 0 {
		t.Fatalf("line count = %d", c.Subtitle.Len())
	}
	if c.Log.Len() != 1 {
		t.Fatalf("history entries = %d, want 1", c.Log.Len())
	}

	if err := c.Log.Undo(c.Subtitle); err != nil {
		t.Fatalf("undo: %v", err)
	}
	checkSnapshots(t, c.Subtitle, datas)
	checkContiguous(t, c.Subtitle)
}

func TestInsertBeforeAfter(t *testing.T) {
	c := newContext(
		document.LineData{Start: 0, End: time.Second, Content: "a"},
		document.LineData{Start: time.Second, End: 2 * time.Second, Content: "b"},
	)

	// no anchor: silent no-op
	if InsertBefore(c) != nil || InsertAfter(c) != nil {
		t.Fatal("insert without anchor should be nil")
	}
	if CanInsert(c) {
		t.Error("CanInsert without anchor")
	}

	c.Selection = []*document.Line{c.Subtitle.Line(1), c.Subtitle.Line(0)}
	before := InsertBefore(c)
	if before == nil || before.Index != 0 {
		t.Fatalf("InsertBefore index = %v", before)
	}
	after := InsertAfter(c)
	if after == nil || after.Index != c.Subtitle.Len()-1 {
		t.Fatalf("InsertAfter index = %v", after)
	}
	checkContiguous(t, c.Subtitle)

	// undo both inserts restores the pair
	if err := c.Log.Undo(c.Subtitle); err != nil {
		t.Fatal(err)
	}
	if err := c.Log.Undo(c.Subtitle); err != nil {
		t.Fatal(err)
	}
	if c.Subtitle.Len() != 2 {
		t.Errorf("line count after undos = %d", c.Subtitle.Len())
	}
}

func TestCreateFromTranscript(t *testing.T) {
	c := newContext()
	c.Subtitle.Transcript.Load("hello brave new world")

	line := Create(c, 0, 1, time.Second, 3*time.Second)
	if line == nil {
		t.Fatal("create failed")
	}
	if line.Content != "hello brave" || line.Start != time.Second || line.End != 3*time.Second {
		t.Errorf("created = %+v", line.Snapshot())
	}
	if c.Subtitle.Transcript.Plain() != "new world" {
		t.Errorf("pool = %q", c.Subtitle.Transcript.Plain())
	}

	if err := c.Log.Undo(c.Subtitle); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if c.Subtitle.Len() != 0 {
		t.Errorf("line count after undo = %d", c.Subtitle.Len())
	}
	if c.Subtitle.Transcript.Plain() != "hello brave new world" {
		t.Errorf("pool after undo = %q", c.Subtitle.Transcript.Plain())
	}
}

func TestQuickCreateEstimatesDuration(t *testing.T) {
	c := newContext()
	c.Subtitle.Transcript.Load("short")

	line := QuickCreate(c, 10*time.Second)
	if line == nil {
		t.Fatal("quick create failed")
	}
	if line.Start != 10*time.Second {
		t.Errorf("start = %v", line.Start)
	}
	if d := line.Duration(); d < createMinDuration || d > createMaxDuration {
		t.Errorf("estimated duration %v out of bounds", d)
	}

	// pool exhausted: no-op
	if QuickCreate(c, 20*time.Second) != nil {
		t.Error("quick create on empty pool should be nil")
	}
}

func TestCompensate(t *testing.T) {
	c := newContext(
		document.LineData{Start: 0, End: time.Second, Content: "a"},
		document.LineData{Start: 3 * time.Second, End: 4 * time.Second, Content: "b"},
	)

	if !Compensate(c, c.Subtitle.Lines(), 0) {
		t.Fatal("compensate failed")
	}
	// line 0 consumes the whole 2s gap; line 1 has no successor
	if c.Subtitle.Line(0).End != 3*time.Second {
		t.Errorf("end = %v, want 3s", c.Subtitle.Line(0).End)
	}
	if c.Subtitle.Line(1).End != 4*time.Second {
		t.Errorf("last line changed: end = %v", c.Subtitle.Line(1).End)
	}

	if err := c.Log.Undo(c.Subtitle); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if c.Subtitle.Line(0).End != time.Second {
		t.Errorf("undo left end = %v", c.Subtitle.Line(0).End)
	}
}

func TestCompensateCapped(t *testing.T) {
	c := newContext(
		document.LineData{Start: 0, End: time.Second, Content: "a"},
		document.LineData{Start: 5 * time.Second, End: 6 * time.Second, Content: "b"},
	)
	if !Compensate(c, c.Subtitle.Lines(), 1500*time.Millisecond) {
		t.Fatal("compensate failed")
	}
	if c.Subtitle.Line(0).End != 2500*time.Millisecond {
		t.Errorf("capped end = %v, want 2.5s", c.Subtitle.Line(0).End)
	}
}

func TestReplace(t *testing.T) {
	c := newContext(
		document.LineData{Start: 0, End: time.Second, Content: "teh cat"},
		document.LineData{Start: time.Second, End: 2 * time.Second, Content: "teh dog"},
		document.LineData{Start: 2 * time.Second, End: 3 * time.Second, Content: "a bird"},
	)
	before := c.Subtitle.Snapshots()

	n := Replace(c, c.Subtitle.Lines(), "teh", "the")
	if n != 2 {
		t.Fatalf("replaced %d lines, want 2", n)
	}
	if c.Subtitle.Line(0).Content != "the cat" || c.Subtitle.Line(1).Content != "the dog" {
		t.Errorf("contents = %q / %q", c.Subtitle.Line(0).Content, c.Subtitle.Line(1).Content)
	}
	if c.Log.Len() != 1 {
		t.Errorf("history entries = %d, want 1", c.Log.Len())
	}

	if err := c.Log.Undo(c.Subtitle); err != nil {
		t.Fatalf("undo: %v", err)
	}
	checkSnapshots(t, c.Subtitle, before)

	if Replace(c, c.Subtitle.Lines(), "missing", "x") != 0 {
		t.Error("replace with no match should be 0")
	}
}

func TestUpdateNoOp(t *testing.T) {
	c := newContext(
		document.LineData{Start: 0, End: time.Second, Content: "a"},
	)
	line := c.Subtitle.Line(0)

	if Update(c, line, line.Snapshot()) {
		t.Error("identical update reported change")
	}
	if c.Log.Len() != 0 {
		t.Error("no-op update recorded history")
	}

	if !Update(c, line, document.LineData{Start: 0, End: time.Second, Content: "b"}) {
		t.Error("real update reported no change")
	}
	if err := c.Log.Undo(c.Subtitle); err != nil {
		t.Fatal(err)
	}
	if line.Content != "a" {
		t.Errorf("content after undo = %q", line.Content)
	}
}

func TestRecreateTimelineAndUndo(t *testing.T) {
	c := newContext(
		document.LineData{Start: 0, End: time.Second, Content: "first line"},
		document.LineData{Start: time.Second, End: 2 * time.Second, Content: "second line"},
	)
	before := c.Subtitle.Snapshots()

	// empty transcript: the blob comes from the line contents
	if !RecreateTimeline(c) {
		t.Fatal("recreate failed")
	}
	if c.Subtitle.Len() != 0 {
		t.Errorf("line count = %d", c.Subtitle.Len())
	}
	if c.Subtitle.Transcript.Plain() != "first line second line" {
		t.Errorf("pool = %q", c.Subtitle.Transcript.Plain())
	}

	if err := c.Log.Undo(c.Subtitle); err != nil {
		t.Fatalf("undo: %v", err)
	}
	checkSnapshots(t, c.Subtitle, before)
	if c.Subtitle.Transcript.Len() != 0 {
		t.Errorf("pool after undo = %q", c.Subtitle.Transcript.Plain())
	}
}

func TestUndoRedoRoundTripAllCommands(t *testing.T) {
	c := newContext(
		document.LineData{Start: 0, End: 4 * time.Second, Content: "abcd"},
		document.LineData{Start: 4 * time.Second, End: 8 * time.Second, Content: "efgh"},
	)
	c.Subtitle.Transcript.Load("spare words here")

	// a mixed sequence of commands
	c.Editing = c.Subtitle.Line(0)
	c.Caret = 2
	if Split(c) == nil {
		t.Fatal("split failed")
	}
	c.Editing = nil
	if !ShiftAll(c, time.Second) {
		t.Fatal("shift failed")
	}
	if Create(c, 0, 2, 10*time.Second, 12*time.Second) == nil {
		t.Fatal("create failed")
	}
	if Merge(c, []*document.Line{c.Subtitle.Line(0), c.Subtitle.Line(1)}) == nil {
		t.Fatal("merge failed")
	}

	after := c.Subtitle.Snapshots()
	pool := c.Subtitle.Transcript.Plain()

	// walk all the way back, then all the way forward
	for c.Log.CanUndo() {
		if err := c.Log.Undo(c.Subtitle); err != nil {
			t.Fatalf("undo: %v", err)
		}
		checkContiguous(t, c.Subtitle)
	}
	for c.Log.CanRedo() {
		if err := c.Log.Redo(c.Subtitle); err != nil {
			t.Fatalf("redo: %v", err)
		}
		checkContiguous(t, c.Subtitle)
	}

	checkSnapshots(t, c.Subtitle, after)
	if c.Subtitle.Transcript.Plain() != pool {
		t.Errorf("pool = %q, want %q", c.Subtitle.Transcript.Plain(), pool)
	}
}
