package document

import (
	"fmt"
	"strings"
)

// Span is an atomic fragment of the reference transcript. Text is
// immutable once created; Bound flips while a quick-mode run is being
// previewed, and binding a run removes its spans from the pool.
type Span struct {
	Index int
	Text  string
	Bound bool
}

// Transcript owns the ordered span pool for one subtitle document.
// QuickMode and Modifying are mutually exclusive input modes: quick
// mode turns the trigger key into "create a line from the next unbound
// run", modifying mode allows manual edits to the transcript text.
type Transcript struct {
	spans     []*Span
	quickMode bool
	modifying bool
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

// Load replaces the span pool with fresh spans split from text.
func (t *Transcript) Load(text string) {
	t.spans = splitSpans(text)
	t.renumber(0)
}

// splitSpans breaks flat text into word-granular spans.
func splitSpans(text string) []*Span {
	fields := strings.Fields(text)
	spans := make([]*Span, 0, len(fields))
	for _, f := range fields {
		spans = append(spans, &Span{Text: f})
	}
	return spans
}

func (t *Transcript) renumber(from int) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(t.spans); i++ {
		t.spans[i].Index = i
	}
}

func (t *Transcript) Len() int {
	return len(t.spans)
}

func (t *Transcript) Span(i int) *Span {
	if i < 0 || i >= len(t.spans) {
		return nil
	}
	return t.spans[i]
}

// Spans returns the live pool; callers must not mutate it directly.
func (t *Transcript) Spans() []*Span {
	return t.spans
}

// Plain returns the remaining transcript text, one space between spans.
func (t *Transcript) Plain() string {
	parts := make([]string, 0, len(t.spans))
	for _, s := range t.spans {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, " ")
}

// QuickMode reports whether the quick-create trigger is armed.
func (t *Transcript) QuickMode() bool { return t.quickMode }

// Modifying reports whether manual text editing is active.
func (t *Transcript) Modifying() bool { return t.modifying }

// SetQuickMode toggles quick mode; enabling it leaves modifying mode.
func (t *Transcript) SetQuickMode(on bool) {
	t.quickMode = on
	if on {
		t.modifying = false
	}
}

// SetModifying toggles manual edit mode; enabling it leaves quick mode.
func (t *Transcript) SetModifying(on bool) {
	t.modifying = on
	if on {
		t.quickMode = false
	}
}

// MarkRun flips the Bound flag on spans [from, to] for preview.
func (t *Transcript) MarkRun(from, to int, bound bool) error {
	if err := t.checkRun(from, to); err != nil {
		return err
	}
	for i := from; i <= to; i++ {
		t.spans[i].Bound = bound
	}
	return nil
}

// NextUnboundRun returns the bounds of the next run of unmarked spans
// at or after from. ok is false when no unmarked span remains.
func (t *Transcript) NextUnboundRun(from int) (start, end int, ok bool) {
	if from < 0 {
		from = 0
	}
	start = -1
	for i := from; i < len(t.spans); i++ {
		if t.spans[i].Bound {
			if start >= 0 {
				return start, i - 1, true
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start < 0 {
		return 0, 0, false
	}
	return start, len(t.spans) - 1, true
}

// BindRun consumes spans [from, to]: their concatenated text is
// returned and the spans leave the pool. The inverse is InsertSpans.
func (t *Transcript) BindRun(from, to int) (string, error) {
	if err := t.checkRun(from, to); err != nil {
		return "", err
	}
	parts := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		parts = append(parts, t.spans[i].Text)
	}
	t.spans = append(t.spans[:from], t.spans[to+1:]...)
	t.renumber(from)
	return strings.Join(parts, " "), nil
}

// InsertSpans re-splits text into fresh spans inserted at position at,
// making that region of the transcript available again. It returns the
// number of spans created.
func (t *Transcript) InsertSpans(at int, text string) int {
	fresh := splitSpans(text)
	if len(fresh) == 0 {
		return 0
	}
	if at < 0 {
		at = 0
	}
	if at > len(t.spans) {
		at = len(t.spans)
	}
	t.spans = append(t.spans[:at], append(fresh, t.spans[at:]...)...)
	t.renumber(at)
	return len(fresh)
}

func (t *Transcript) checkRun(from, to int) error {
	if from < 0 || to >= len(t.spans) || from > to {
		return fmt.Errorf("span run [%d, %d] out of range (pool size %d)", from, to, len(t.spans))
	}
	return nil
}
