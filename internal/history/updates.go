package history

import (
	"encoding/json"
	"fmt"

	"github.com/hmaru/subedit/internal/document"
)

// UpdateLine records a single-line edit as before/after snapshots.
type UpdateLine struct {
	base
	Index  int
	Before document.LineData
	After  document.LineData
}

type updateLineJSON struct {
	Index  int               `json:"index"`
	Before document.LineData `json:"beforeLineData"`
	After  document.LineData `json:"afterLineData"`
}

func NewUpdateLine(index int, before, after document.LineData) *UpdateLine {
	return &UpdateLine{Index: index, Before: before, After: after}
}

func (h *UpdateLine) Action() Action { return ActionUpdateLine }

func (h *UpdateLine) Redo(sub *document.Subtitle) error {
	return applyAt(sub, h.Index, h.After, "updateLine redo")
}

func (h *UpdateLine) Undo(sub *document.Subtitle) error {
	return applyAt(sub, h.Index, h.Before, "updateLine undo")
}

func (h *UpdateLine) MarshalData() (json.RawMessage, error) {
	return json.Marshal(updateLineJSON{Index: h.Index, Before: h.Before, After: h.After})
}

func decodeUpdateLine(data json.RawMessage) (History, error) {
	var raw updateLineJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return NewUpdateLine(raw.Index, raw.Before, raw.After), nil
}

// UpdateLines records a batch edit (replace, compensate) as paired
// before/after snapshot lists.
type UpdateLines struct {
	base
	Before []indexedData
	After  []indexedData
}

type updateLinesJSON struct {
	Before []indexedData `json:"beforeLineDatas"`
	After  []indexedData `json:"afterLineDatas"`
}

// NewUpdateLines captures the given lines as the before state; the
// caller mutates them and then calls Commit to capture the after state.
func NewUpdateLines(lines []*document.Line) *UpdateLines {
	return &UpdateLines{Before: snapshotLines(lines)}
}

func (h *UpdateLines) Commit(lines []*document.Line) {
	h.After = snapshotLines(lines)
}

func (h *UpdateLines) Action() Action { return ActionUpdateLines }

func (h *UpdateLines) Redo(sub *document.Subtitle) error {
	return applyAll(sub, h.After, "updateLines redo")
}

func (h *UpdateLines) Undo(sub *document.Subtitle) error {
	return applyAll(sub, h.Before, "updateLines undo")
}

func (h *UpdateLines) MarshalData() (json.RawMessage, error) {
	return json.Marshal(updateLinesJSON{Before: h.Before, After: h.After})
}

func decodeUpdateLines(data json.RawMessage) (History, error) {
	var raw updateLinesJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &UpdateLines{Before: raw.Before, After: raw.After}, nil
}

// ShiftLines records a timing shift; the payload shape matches
// UpdateLines but only start/end differ between the two sides.
type ShiftLines struct {
	base
	Before []indexedData
	After  []indexedData
}

func NewShiftLines(lines []*document.Line) *ShiftLines {
	return &ShiftLines{Before: snapshotLines(lines)}
}

func (h *ShiftLines) Commit(lines []*document.Line) {
	h.After = snapshotLines(lines)
}

func (h *ShiftLines) Action() Action { return ActionShiftLines }

func (h *ShiftLines) Redo(sub *document.Subtitle) error {
	return applyAll(sub, h.After, "shiftLines redo")
}

func (h *ShiftLines) Undo(sub *document.Subtitle) error {
	return applyAll(sub, h.Before, "shiftLines undo")
}

func (h *ShiftLines) MarshalData() (json.RawMessage, error) {
	return json.Marshal(updateLinesJSON{Before: h.Before, After: h.After})
}

func decodeShiftLines(data json.RawMessage) (History, error) {
	var raw updateLinesJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &ShiftLines{Before: raw.Before, After: raw.After}, nil
}

func applyAt(sub *document.Subtitle, index int, data document.LineData, op string) error {
	line := sub.Line(index)
	if line == nil {
		return fmt.Errorf("%s: no line at index %d", op, index)
	}
	line.Apply(data)
	return nil
}

func applyAll(sub *document.Subtitle, datas []indexedData, op string) error {
	for _, d := range datas {
		if err := applyAt(sub, d.Index, d.Data, op); err != nil {
			return err
		}
	}
	return nil
}
