package history

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/hmaru/subedit/internal/document"
	"github.com/hmaru/subedit/internal/timecode"
)

// CreateLine records binding a contiguous span run into a new trailing
// line. Undo removes the line and reinserts the consumed spans.
type CreateLine struct {
	base
	StartSpanIndex int
	EndSpanIndex   int
	Start          time.Duration
	End            time.Duration
	Content        string
}

type createLineJSON struct {
	StartSpanIndex int    `json:"startSpanIndex"`
	EndSpanIndex   int    `json:"endSpanIndex"`
	Start          string `json:"start"`
	End            string `json:"end"`
	Content        string `json:"content"`
}

func NewCreateLine(startSpan, endSpan int, start, end time.Duration, content string) *CreateLine {
	return &CreateLine{
		StartSpanIndex: startSpan,
		EndSpanIndex:   endSpan,
		Start:          start,
		End:            end,
		Content:        content,
	}
}

func (h *CreateLine) Action() Action { return ActionCreateLine }

func (h *CreateLine) Redo(sub *document.Subtitle) error {
	if _, err := sub.Transcript.BindRun(h.StartSpanIndex, h.EndSpanIndex); err != nil {
		return fmt.Errorf("createLine redo: %w", err)
	}
	line := sub.Append()
	line.Apply(document.LineData{Start: h.Start, End: h.End, Content: h.Content})
	line.SetOriginal()
	return nil
}

func (h *CreateLine) Undo(sub *document.Subtitle) error {
	line := sub.Line(sub.Len() - 1)
	if line == nil {
		return fmt.Errorf("createLine undo: no trailing line")
	}
	sub.Delete(line)
	sub.Transcript.InsertSpans(h.StartSpanIndex, h.Content)
	return nil
}

func (h *CreateLine) MarshalData() (json.RawMessage, error) {
	return json.Marshal(createLineJSON{
		StartSpanIndex: h.StartSpanIndex,
		EndSpanIndex:   h.EndSpanIndex,
		Start:          timecode.Format(h.Start),
		End:            timecode.Format(h.End),
		Content:        h.Content,
	})
}

func decodeCreateLine(data json.RawMessage) (History, error) {
	var raw createLineJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	start, err := timecode.Parse(raw.Start)
	if err != nil {
		return nil, err
	}
	end, err := timecode.Parse(raw.End)
	if err != nil {
		return nil, err
	}
	return NewCreateLine(raw.StartSpanIndex, raw.EndSpanIndex, start, end, raw.Content), nil
}

// InsertLine records creating an empty line at Index.
type InsertLine struct {
	base
	Index int
}

type insertLineJSON struct {
	Index int `json:"index"`
}

func NewInsertLine(index int) *InsertLine {
	return &InsertLine{Index: index}
}

func (h *InsertLine) Action() Action { return ActionInsertLine }

func (h *InsertLine) Redo(sub *document.Subtitle) error {
	if h.Index < 0 || h.Index > sub.Len() {
		return fmt.Errorf("insertLine redo: index %d out of range", h.Index)
	}
	sub.InsertAt(h.Index - 1)
	return nil
}

func (h *InsertLine) Undo(sub *document.Subtitle) error {
	if !sub.DeleteAt(h.Index) {
		return fmt.Errorf("insertLine undo: no line at index %d", h.Index)
	}
	return nil
}

func (h *InsertLine) MarshalData() (json.RawMessage, error) {
	return json.Marshal(insertLineJSON{Index: h.Index})
}

func decodeInsertLine(data json.RawMessage) (History, error) {
	var raw insertLineJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return NewInsertLine(raw.Index), nil
}

// DeletedLine is one removed line inside a DeleteLines batch.
type DeletedLine struct {
	Index int                `json:"index"`
	State document.LineState `json:"lineState"`
	Data  document.LineData  `json:"lineData"`
}

// DeleteLines records a batch deletion; a single undo restores every
// line of the batch at its original index.
type DeleteLines struct {
	base
	Lines []DeletedLine
}

type deleteLinesJSON struct {
	Lines []DeletedLine `json:"lines"`
}

func NewDeleteLines(lines []*document.Line) *DeleteLines {
	h := &DeleteLines{Lines: make([]DeletedLine, 0, len(lines))}
	for _, l := range lines {
		h.Lines = append(h.Lines, DeletedLine{
			Index: l.Index,
			State: l.State(),
			Data:  l.Snapshot(),
		})
	}
	sort.Slice(h.Lines, func(i, j int) bool { return h.Lines[i].Index < h.Lines[j].Index })
	return h
}

func (h *DeleteLines) Action() Action { return ActionDeleteLines }

func (h *DeleteLines) Redo(sub *document.Subtitle) error {
	// delete from the highest index down so earlier indices stay valid
	for i := len(h.Lines) - 1; i >= 0; i-- {
		if !sub.DeleteAt(h.Lines[i].Index) {
			return fmt.Errorf("deleteLines redo: no line at index %d", h.Lines[i].Index)
		}
	}
	return nil
}

func (h *DeleteLines) Undo(sub *document.Subtitle) error {
	for _, dl := range h.Lines {
		if dl.Index > sub.Len() {
			return fmt.Errorf("deleteLines undo: index %d out of range", dl.Index)
		}
		line := sub.InsertAt(dl.Index - 1)
		line.Apply(dl.Data)
		line.Selected = dl.State.Selected
		line.SetOriginal()
	}
	return nil
}

func (h *DeleteLines) MarshalData() (json.RawMessage, error) {
	return json.Marshal(deleteLinesJSON{Lines: h.Lines})
}

func decodeDeleteLines(data json.RawMessage) (History, error) {
	var raw deleteLinesJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &DeleteLines{Lines: raw.Lines}, nil
}
