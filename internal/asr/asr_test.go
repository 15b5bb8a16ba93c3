package asr

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hmaru/subedit/internal/document"
	"github.com/hmaru/subedit/internal/media"
	"google.golang.org/genai"
)

func TestParseWhisperWords(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantErr   bool
	}{
		{
			name: "valid word list",
			input: `{"text": "Hello world", "words": [
				{"word": "Hello", "start": 0.0, "end": 0.4},
				{"word": "world", "start": 0.5, "end": 0.9}
			]}`,
			wantCount: 2,
		},
		{
			name:      "skips blank words",
			input:     `{"words": [{"word": " ", "start": 0.0}, {"word": "ok", "start": 1.0}]}`,
			wantCount: 1,
		},
		{
			name:    "no words in response",
			input:   `{"text": "Hello world", "segments": []}`,
			wantErr: true,
		},
		{
			name:    "empty response",
			input:   "",
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			input:   `{"words": [{"word": "incomplete"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, err := parseWhisperWords(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(words) != tt.wantCount {
				t.Errorf("got %d words, want %d", len(words), tt.wantCount)
			}
		})
	}
}

func TestParseWhisperWordsTiming(t *testing.T) {
	words, err := parseWhisperWords(`{"words": [{"word": "late", "start": 2.5}]}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if words[0].Start != 2500*time.Millisecond {
		t.Errorf("start = %v, want 2.5s", words[0].Start)
	}
}

func TestParseGeminiWords(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{
					genai.NewPartFromText("```json\n[{\"word\": \"Hello\", \"start\": 0.0}, {\"word\": \"there\", \"start\": 0.6}]\n```"),
				},
			},
		}},
	}

	words, err := parseGeminiWords(resp)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("got %d words, want 2", len(words))
	}
	if words[1].Word != "there" || words[1].Start != 600*time.Millisecond {
		t.Errorf("second word = %+v", words[1])
	}
}

func TestParseGeminiWordsEmpty(t *testing.T) {
	if _, err := parseGeminiWords(nil); err == nil {
		t.Error("expected error for nil response")
	}
	if _, err := parseGeminiWords(&genai.GenerateContentResponse{}); err == nil {
		t.Error("expected error for response without candidates")
	}
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON",
			input: `[{"word": "hello", "start": 0}]`,
			want:  `[{"word": "hello", "start": 0}]`,
		},
		{
			name:  "json code fence",
			input: "```json\n[{\"word\": \"hello\", \"start\": 0}]\n```",
			want:  `[{"word": "hello", "start": 0}]`,
		},
		{
			name:  "plain code fence",
			input: "```\n[{\"word\": \"hello\", \"start\": 0}]\n```",
			want:  `[{"word": "hello", "start": 0}]`,
		},
		{
			name:  "with leading/trailing whitespace",
			input: "  \n\n```json\n[{\"word\": \"hi\"}]\n```\n\n  ",
			want:  `[{"word": "hi"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSONResponse(tt.input); got != tt.want {
				t.Errorf("cleanJSONResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpreadWords(t *testing.T) {
	words := spreadWords("one two three four", 0, 4*time.Second)
	if len(words) != 4 {
		t.Fatalf("got %d words, want 4", len(words))
	}
	for i, w := range words {
		want := time.Duration(i) * time.Second
		if w.Start != want {
			t.Errorf("word %d starts at %v, want %v", i, w.Start, want)
		}
	}

	if got := spreadWords("   ", 0, time.Second); got != nil {
		t.Errorf("blank text should yield no words, got %v", got)
	}
}

// returns canned words whose starts are relative to the chunk file
type fakeTranscriber struct {
	byPath map[string][]document.WordSegment
	errOn  string
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	if f.errOn != "" && audioPath == f.errOn {
		return nil, errors.New("service unavailable")
	}
	return &Result{Words: f.byPath[audioPath]}, nil
}

func TestTranscribeChunksOffsetsAndOrders(t *testing.T) {
	fake := &fakeTranscriber{byPath: map[string][]document.WordSegment{
		"a.mp3": {{Word: "first", Start: 0}, {Word: "second", Start: time.Second}},
		"b.mp3": {{Word: "third", Start: 500 * time.Millisecond}},
	}}
	chunks := []media.ChunkInfo{
		{Path: "a.mp3", Index: 0, Start: 0, End: 10 * time.Second},
		{Path: "b.mp3", Index: 1, Start: 10 * time.Second, End: 20 * time.Second},
	}

	res, err := TranscribeChunks(context.Background(), fake, chunks, 2)
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}

	var got []string
	for _, w := range res.Words {
		got = append(got, w.Word)
	}
	if strings.Join(got, " ") != "first second third" {
		t.Fatalf("word order = %v", got)
	}
	if res.Words[2].Start != 10500*time.Millisecond {
		t.Errorf("chunk offset not applied: %v", res.Words[2].Start)
	}
	if res.Duration != 20*time.Second {
		t.Errorf("duration = %v, want 20s", res.Duration)
	}
}

func TestTranscribeChunksPropagatesError(t *testing.T) {
	fake := &fakeTranscriber{
		byPath: map[string][]document.WordSegment{"a.mp3": {{Word: "ok"}}},
		errOn:  "b.mp3",
	}
	chunks := []media.ChunkInfo{
		{Path: "a.mp3", Index: 0, End: 10 * time.Second},
		{Path: "b.mp3", Index: 1, Start: 10 * time.Second, End: 20 * time.Second},
	}

	if _, err := TranscribeChunks(context.Background(), fake, chunks, 1); err == nil {
		t.Error("expected error from failing chunk")
	}
}

func TestTranscribeChunksEmpty(t *testing.T) {
	res, err := TranscribeChunks(context.Background(), &fakeTranscriber{}, nil, 3)
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if len(res.Words) != 0 {
		t.Errorf("expected no words, got %d", len(res.Words))
	}
}

func TestFactoryUnknownProvider(t *testing.T) {
	if _, err := Factory(context.Background(), Provider("bogus"), "key", Options{}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewOpenAITranscriberRequiresKey(t *testing.T) {
	if _, err := NewOpenAITranscriber(context.Background(), "", Options{}); err == nil {
		t.Error("expected error for empty API key")
	}
}
