package history

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hmaru/subedit/internal/document"
)

// SplitLine records a split by its target index and caret position;
// replay re-runs the deterministic split algorithm.
type SplitLine struct {
	base
	Index         int
	CaretPosition int
}

type splitLineJSON struct {
	Index         int `json:"index"`
	CaretPosition int `json:"caretPosition"`
}

func NewSplitLine(index, caret int) *SplitLine {
	return &SplitLine{Index: index, CaretPosition: caret}
}

func (h *SplitLine) Action() Action { return ActionSplitLine }

func (h *SplitLine) Redo(sub *document.Subtitle) error {
	line := sub.Line(h.Index)
	if line == nil {
		return fmt.Errorf("splitLine redo: no line at index %d", h.Index)
	}
	first, second, ok := document.SplitData(line.Snapshot(), h.CaretPosition)
	if !ok {
		return fmt.Errorf("splitLine redo: caret %d does not split line %d", h.CaretPosition, h.Index)
	}
	line.Apply(first)
	next := sub.InsertAt(h.Index)
	next.Apply(second)
	return nil
}

func (h *SplitLine) Undo(sub *document.Subtitle) error {
	line := sub.Line(h.Index)
	next := sub.Line(h.Index + 1)
	if line == nil || next == nil {
		return fmt.Errorf("splitLine undo: missing halves at index %d", h.Index)
	}
	merged := document.MergeData([]document.LineData{line.Snapshot(), next.Snapshot()})
	sub.Delete(next)
	line.Apply(merged)
	return nil
}

func (h *SplitLine) MarshalData() (json.RawMessage, error) {
	return json.Marshal(splitLineJSON{Index: h.Index, CaretPosition: h.CaretPosition})
}

func decodeSplitLine(data json.RawMessage) (History, error) {
	var raw splitLineJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return NewSplitLine(raw.Index, raw.CaretPosition), nil
}

// MargeLine records a merge: Index is the surviving line, LineStates
// and LineDatas snapshot every original line in index order, the
// selected and the passed-over alike, so undo restores all of them.
// The action tag keeps the original log spelling.
type MargeLine struct {
	base
	Index      int
	LineStates []document.LineState
	LineDatas  []document.LineData
}

type margeLineJSON struct {
	Index      int                  `json:"index"`
	LineStates []document.LineState `json:"lineStates"`
	LineDatas  []document.LineData  `json:"lineDatas"`
}

func NewMargeLine(index int, lines []*document.Line) *MargeLine {
	h := &MargeLine{Index: index}
	for _, l := range lines {
		h.LineStates = append(h.LineStates, l.State())
		h.LineDatas = append(h.LineDatas, l.Snapshot())
	}
	return h
}

func (h *MargeLine) Action() Action { return ActionMargeLine }

func (h *MargeLine) Redo(sub *document.Subtitle) error {
	line := sub.Line(h.Index)
	if line == nil {
		return fmt.Errorf("margeLine redo: no line at index %d", h.Index)
	}
	for i := len(h.LineDatas) - 1; i >= 1; i-- {
		if !sub.DeleteAt(h.Index + i) {
			return fmt.Errorf("margeLine redo: no line at index %d", h.Index+i)
		}
	}
	line.Apply(document.MergeData(h.LineDatas))
	return nil
}

func (h *MargeLine) Undo(sub *document.Subtitle) error {
	line := sub.Line(h.Index)
	if line == nil || len(h.LineDatas) == 0 {
		return fmt.Errorf("margeLine undo: no line at index %d", h.Index)
	}
	line.Apply(h.LineDatas[0])
	line.Selected = h.LineStates[0].Selected
	for i := 1; i < len(h.LineDatas); i++ {
		restored := sub.InsertAt(h.Index + i - 1)
		restored.Apply(h.LineDatas[i])
		restored.Selected = h.LineStates[i].Selected
		restored.SetOriginal()
	}
	return nil
}

func (h *MargeLine) MarshalData() (json.RawMessage, error) {
	return json.Marshal(margeLineJSON{Index: h.Index, LineStates: h.LineStates, LineDatas: h.LineDatas})
}

func decodeMargeLine(data json.RawMessage) (History, error) {
	var raw margeLineJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &MargeLine{Index: raw.Index, LineStates: raw.LineStates, LineDatas: raw.LineDatas}, nil
}

// RecreateTime records the destructive timeline rebuild: the full
// pre-state line snapshots plus the transcript's remaining text, so
// undo restores both sides.
type RecreateTime struct {
	base
	Lines      []document.LineData
	Transcript string
}

type recreateTimeJSON struct {
	Lines      []document.LineData `json:"lines"`
	Transcript string              `json:"transcript"`
}

func NewRecreateTime(lines []document.LineData, transcript string) *RecreateTime {
	return &RecreateTime{Lines: lines, Transcript: transcript}
}

func (h *RecreateTime) Action() Action { return ActionRecreateTime }

// RebuildBlob is the flat text the recreate loads into the transcript:
// the pre-state transcript text, or the concatenated line contents
// when the transcript was empty.
func (h *RecreateTime) RebuildBlob() string {
	if strings.TrimSpace(h.Transcript) != "" {
		return h.Transcript
	}
	parts := make([]string, 0, len(h.Lines))
	for _, d := range h.Lines {
		parts = append(parts, d.Content)
	}
	return strings.Join(parts, " ")
}

func (h *RecreateTime) Redo(sub *document.Subtitle) error {
	for sub.Len() > 0 {
		sub.DeleteAt(sub.Len() - 1)
	}
	sub.Transcript.Load(h.RebuildBlob())
	return nil
}

func (h *RecreateTime) Undo(sub *document.Subtitle) error {
	for sub.Len() > 0 {
		sub.DeleteAt(sub.Len() - 1)
	}
	for _, d := range h.Lines {
		line := sub.Append()
		line.Apply(d)
		line.SetOriginal()
	}
	sub.Transcript.Load(h.Transcript)
	return nil
}

func (h *RecreateTime) MarshalData() (json.RawMessage, error) {
	return json.Marshal(recreateTimeJSON{Lines: h.Lines, Transcript: h.Transcript})
}

func decodeRecreateTime(data json.RawMessage) (History, error) {
	var raw recreateTimeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return NewRecreateTime(raw.Lines, raw.Transcript), nil
}
