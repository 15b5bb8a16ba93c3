package asr

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hmaru/subedit/internal/document"
	"github.com/hmaru/subedit/internal/media"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// implements WordTranscriber using OpenAI Audio API
type OpenAITranscriber struct {
	client  openai.Client
	model   string
	options Options
}

// word entry from Whisper verbose_json response
type whisperWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// verbose_json response structure from Whisper
type whisperVerboseResponse struct {
	Text     string        `json:"text"`
	Words    []whisperWord `json:"words"`
	Language string        `json:"language"`
	Duration float64       `json:"duration"`
}

func NewOpenAITranscriber(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*OpenAITranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	model := opts.Model
	if model == "" {
		model = "whisper-1"
	}

	return &OpenAITranscriber{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

// transcribes single audio file with word timestamps
func (t *OpenAITranscriber) Transcribe(
	ctx context.Context,
	audioPath string,
) (*Result, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	duration, _ := media.Probe(audioPath)

	params := openai.AudioTranscriptionNewParams{
		File:                   file,
		Model:                  openai.AudioModel(t.model),
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []string{"word"},
	}

	if t.options.Language != "" {
		params.Language = openai.String(t.options.Language)
	}

	if t.options.Prompt != "" {
		params.Prompt = openai.String(t.options.Prompt)
	}

	resp, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	words, err := parseWhisperWords(resp.RawJSON())
	if err != nil {
		// word granularity missing, fall back to evenly spaced words
		words = spreadWords(resp.Text, 0, duration)
	}

	return &Result{
		Words:    words,
		Language: t.options.Language,
		Duration: duration,
	}, nil
}

func parseWhisperWords(rawJSON string) ([]document.WordSegment, error) {
	if rawJSON == "" {
		return nil, fmt.Errorf("empty response")
	}

	var verboseResp whisperVerboseResponse
	if err := json.Unmarshal([]byte(rawJSON), &verboseResp); err != nil {
		return nil, fmt.Errorf("failed to parse verbose_json response: %w", err)
	}

	if len(verboseResp.Words) == 0 {
		return nil, fmt.Errorf("no words in response")
	}

	words := make([]document.WordSegment, 0, len(verboseResp.Words))
	for _, w := range verboseResp.Words {
		text := strings.TrimSpace(w.Word)
		if text == "" {
			continue
		}
		words = append(words, document.WordSegment{
			Word:  text,
			Start: time.Duration(w.Start * float64(time.Second)),
		})
	}

	return words, nil
}

// distributes words of a plain text evenly across a time range,
// used when the service returns no per-word timing
func spreadWords(text string, start, end time.Duration) []document.WordSegment {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	step := (end - start) / time.Duration(len(fields))
	words := make([]document.WordSegment, len(fields))
	for i, f := range fields {
		words[i] = document.WordSegment{Word: f, Start: start + step*time.Duration(i)}
	}
	return words
}

func (t *OpenAITranscriber) Close() error {
	return nil
}
