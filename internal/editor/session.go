// Package editor owns the interactive state around one
// subtitle/transcript pair: the single editing line, the
// multi-selection, playback tracking, and the command entry points the
// UI triggers.
package editor

import (
	"context"
	"fmt"
	"time"

	"github.com/hmaru/subedit/internal/command"
	"github.com/hmaru/subedit/internal/document"
	"github.com/hmaru/subedit/internal/history"
	"github.com/hmaru/subedit/internal/logging"
	"github.com/hmaru/subedit/internal/store"
)

// Playback is the external video collaborator. The core never owns
// media decoding; it only reads the clock and issues seeks.
type Playback interface {
	CurrentTime() time.Duration
	Play()
	Pause()
	Seek(t time.Duration)
}

// Persister is the external save endpoint. Failures come back as plain
// errors for the caller to retry or report.
type Persister interface {
	Persist(ctx context.Context, doc *store.Document) error
}

// Session wires one active subtitle/transcript pair to its commands.
type Session struct {
	Header string

	sub *document.Subtitle
	log *history.Log

	ctx command.Context

	playback Playback
	playing  *document.Line
	tracking bool

	// OnScrollTo is invoked when tracking wants the view to follow the
	// playing line.
	OnScrollTo func(index int)

	logger *logging.Logger
	active bool
}

func NewSession(sub *document.Subtitle, log *history.Log, playback Playback, logger *logging.Logger) *Session {
	if log == nil {
		log = history.NewLog()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Session{
		sub:      sub,
		log:      log,
		playback: playback,
		tracking: true,
		logger:   logger,
		active:   true,
	}
	s.ctx = command.Context{Subtitle: sub, Log: log}
	return s
}

// Resume rebuilds a session from a persisted document, edit log
// included.
func Resume(doc *store.Document, playback Playback, logger *logging.Logger) (*Session, error) {
	sub, log, err := store.ToSubtitle(doc, logger)
	if err != nil {
		return nil, fmt.Errorf("resume session: %w", err)
	}
	s := NewSession(sub, log, playback, logger)
	s.Header = doc.Header
	return s, nil
}

func (s *Session) Subtitle() *document.Subtitle { return s.sub }
func (s *Session) Log() *history.Log            { return s.log }
func (s *Session) Editing() *document.Line      { return s.ctx.Editing }
func (s *Session) Tracking() bool               { return s.tracking }

// SetConfirm installs the hook consulted before risky operations.
func (s *Session) SetConfirm(fn func(message string) bool) {
	s.ctx.Confirm = fn
}

// StartEdit moves editing focus to a line, first finishing any other
// line's edit so at most one line is ever in editing state.
func (s *Session) StartEdit(line *document.Line, caret int) bool {
	if line == nil || line.Index < 0 {
		return false
	}
	if s.ctx.Editing == line {
		s.ctx.Caret = caret
		return true
	}
	s.FinishEdit(nil)
	s.ctx.Editing = line
	s.ctx.Caret = caret
	line.Editing = true
	return true
}

// FinishEdit commits the editing line. A non-nil after carries the
// edited fields; a no-op change records no history.
func (s *Session) FinishEdit(after *document.LineData) {
	line := s.ctx.Editing
	if line == nil {
		return
	}
	if after != nil {
		command.Update(&s.ctx, line, *after)
	}
	line.Editing = false
	s.ctx.Editing = nil
	s.ctx.Caret = 0
}

// CancelEdit drops editing focus, discarding any unsaved text.
func (s *Session) CancelEdit() {
	if s.ctx.Editing == nil {
		return
	}
	s.ctx.Editing.Editing = false
	s.ctx.Editing = nil
	s.ctx.Caret = 0
}

// SetCaret updates the caret inside the editing line.
func (s *Session) SetCaret(caret int) {
	s.ctx.Caret = caret
}

// Select adds a line to the multi-selection.
func (s *Session) Select(line *document.Line) {
	if line == nil || line.Index < 0 || line.Selected {
		return
	}
	line.Selected = true
	s.ctx.Selection = append(s.ctx.Selection, line)
}

// Deselect removes a line from the multi-selection.
func (s *Session) Deselect(line *document.Line) {
	for i, l := range s.ctx.Selection {
		if l == line {
			line.Selected = false
			s.ctx.Selection = append(s.ctx.Selection[:i], s.ctx.Selection[i+1:]...)
			return
		}
	}
}

// ClearSelection empties the multi-selection.
func (s *Session) ClearSelection() {
	for _, l := range s.ctx.Selection {
		l.Selected = false
	}
	s.ctx.Selection = nil
}

// Selection returns the currently selected lines.
func (s *Session) Selection() []*document.Line {
	return s.ctx.Selection
}

// Tick is called on every playback time change. It marks the line
// under the position as playing and, when tracking is on, asks the
// view to follow it.
func (s *Session) Tick(t time.Duration) {
	if !s.active {
		return
	}
	line := s.sub.LineAt(t)
	if line == s.playing {
		return
	}
	if s.playing != nil {
		s.playing.Playing = false
	}
	s.playing = line
	if line == nil {
		return
	}
	line.Playing = true
	if s.tracking && s.OnScrollTo != nil {
		s.OnScrollTo(line.Index)
	}
}

// Playing returns the line under the playback position, if any.
func (s *Session) Playing() *document.Line { return s.playing }

// ManualScroll suspends auto-tracking until BackToPlaying.
func (s *Session) ManualScroll() {
	s.tracking = false
}

// BackToPlaying re-enables tracking and jumps to the playing line.
func (s *Session) BackToPlaying() {
	s.tracking = true
	if s.playing != nil && s.OnScrollTo != nil {
		s.OnScrollTo(s.playing.Index)
	}
}

// SeekToLine moves playback to a line's start.
func (s *Session) SeekToLine(line *document.Line) {
	if line == nil || line.Index < 0 || s.playback == nil {
		return
	}
	s.playback.Seek(line.Start)
}

// Deactivate tears the session down before switching pairs: any edit
// in progress is cancelled and playback stops.
func (s *Session) Deactivate() {
	if !s.active {
		return
	}
	s.CancelEdit()
	s.ClearSelection()
	if s.playing != nil {
		s.playing.Playing = false
		s.playing = nil
	}
	if s.playback != nil {
		s.playback.Pause()
	}
	s.active = false
	s.logger.Debugw("session deactivated", "header", s.Header)
}

// Active reports whether the session is the live pair.
func (s *Session) Active() bool { return s.active }

// Command entry points. Each delegates to the command layer, which
// validates, mutates, and records history.

func (s *Session) QuickCreate() *document.Line {
	at := time.Duration(0)
	if s.playback != nil {
		at = s.playback.CurrentTime()
	}
	return command.QuickCreate(&s.ctx, at)
}

func (s *Session) CreateFromSpans(fromSpan, toSpan int, start, end time.Duration) *document.Line {
	return command.Create(&s.ctx, fromSpan, toSpan, start, end)
}

func (s *Session) InsertBefore() *document.Line { return command.InsertBefore(&s.ctx) }
func (s *Session) InsertAfter() *document.Line  { return command.InsertAfter(&s.ctx) }

// DeleteSelection removes the multi-selection as one undoable batch.
// Any edit in progress on a doomed line is force-finished first.
func (s *Session) DeleteSelection() bool {
	s.FinishEdit(nil)
	return command.Delete(&s.ctx, nil)
}

func (s *Session) SplitAtCaret() *document.Line {
	return command.Split(&s.ctx)
}

// MergeSelection merges the selected lines into the lowest-index one.
func (s *Session) MergeSelection() *document.Line {
	return command.Merge(&s.ctx, nil)
}

func (s *Session) ShiftSelection(offset time.Duration) bool {
	return command.Shift(&s.ctx, nil, offset)
}

func (s *Session) ShiftAll(offset time.Duration) bool {
	return command.ShiftAll(&s.ctx, offset)
}

func (s *Session) Compensate(maxGap time.Duration) bool {
	return command.Compensate(&s.ctx, nil, maxGap)
}

func (s *Session) ReplaceAll(old, new string) int {
	return command.Replace(&s.ctx, s.sub.Lines(), old, new)
}

func (s *Session) RecreateTimeline() bool {
	return command.RecreateTimeline(&s.ctx)
}

// Undo reverts the most recent command.
func (s *Session) Undo() error {
	s.FinishEdit(nil)
	return s.log.Undo(s.sub)
}

// Redo re-applies the most recently undone command.
func (s *Session) Redo() error {
	s.FinishEdit(nil)
	return s.log.Redo(s.sub)
}

// Save batches every line and the edit log to the persistence
// endpoint. It is explicit, never automatic.
func (s *Session) Save(ctx context.Context, p Persister) error {
	if p == nil {
		return fmt.Errorf("no persistence endpoint")
	}
	doc, err := store.FromSubtitle(s.sub, s.log, s.Header)
	if err != nil {
		return err
	}
	if err := p.Persist(ctx, doc); err != nil {
		return fmt.Errorf("save failed: %w", err)
	}
	s.logger.Infow("document saved", "lines", s.sub.Len(), "history", s.log.Len())
	return nil
}
