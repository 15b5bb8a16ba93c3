package history

import (
	"encoding/json"
	"fmt"

	"github.com/hmaru/subedit/internal/logging"
)

// ModifiedState is the serializable projection of a History entry.
// The full edit log persists as a ModifiedState slice so a session can
// resume with undo/redo intact.
type ModifiedState struct {
	Action       Action          `json:"action"`
	Data         json.RawMessage `json:"data"`
	UndoExecuted bool            `json:"undoExecuted"`
}

// decoders maps action tags to payload decoders. Loading an unknown
// tag skips the entry instead of failing the whole log.
var decoders = map[Action]func(json.RawMessage) (History, error){
	ActionCreateLine:   decodeCreateLine,
	ActionInsertLine:   decodeInsertLine,
	ActionDeleteLines:  decodeDeleteLines,
	ActionUpdateLine:   decodeUpdateLine,
	ActionUpdateLines:  decodeUpdateLines,
	ActionShiftLines:   decodeShiftLines,
	ActionSplitLine:    decodeSplitLine,
	ActionMargeLine:    decodeMargeLine,
	ActionRecreateTime: decodeRecreateTime,
}

// Encode projects history entries into their persistence form.
func Encode(entries []History) ([]ModifiedState, error) {
	out := make([]ModifiedState, 0, len(entries))
	for _, h := range entries {
		data, err := h.MarshalData()
		if err != nil {
			return nil, fmt.Errorf("encode %s history: %w", h.Action(), err)
		}
		out = append(out, ModifiedState{
			Action:       h.Action(),
			Data:         data,
			UndoExecuted: h.UndoExecuted(),
		})
	}
	return out, nil
}

// Decode rebuilds history entries from their persistence form.
// Unrecognized action tags and corrupt payloads are skipped with a
// warning so a newer log still partially replays.
func Decode(states []ModifiedState, log *logging.Logger) []History {
	entries := make([]History, 0, len(states))
	for i, st := range states {
		decode, ok := decoders[st.Action]
		if !ok {
			if log != nil {
				log.Warnw("skipping unknown history action", "index", i, "action", st.Action)
			}
			continue
		}
		h, err := decode(st.Data)
		if err != nil {
			if log != nil {
				log.Warnw("skipping corrupt history entry", "index", i, "action", st.Action, "error", err)
			}
			continue
		}
		h.SetUndoExecuted(st.UndoExecuted)
		entries = append(entries, h)
	}
	return entries
}
