// Package asr is the word-segment feed: it turns audio into per-word
// timestamps the document model binds onto lines. The core only
// consumes this during import, never during interactive editing.
package asr

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hmaru/subedit/internal/document"
	"github.com/hmaru/subedit/internal/media"
)

// Result is one recognition task's output.
type Result struct {
	Words    []document.WordSegment
	Language string
	Duration time.Duration
}

// WordTranscriber produces word-level timestamps for an audio file.
type WordTranscriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
}

// Provider names a recognition service.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// Options configure a recognition task.
type Options struct {
	Language string // Source language of the audio
	Model    string
	Prompt   string
}

// Factory creates a transcriber for the given provider.
func Factory(ctx context.Context, provider Provider, apiKey string, opts Options) (WordTranscriber, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAITranscriber(ctx, apiKey, opts)
	case ProviderGemini:
		return NewGeminiTranscriber(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

// holds the result of transcribing one chunk
type chunkResult struct {
	Index int
	Words []document.WordSegment
	Error error
}

// transcribes a single chunk and adjusts timestamps
func transcribeChunk(ctx context.Context, t WordTranscriber, chunk media.ChunkInfo) ([]document.WordSegment, error) {
	res, err := t.Transcribe(ctx, chunk.Path)
	if err != nil {
		return nil, err
	}

	// adjust timestamps based on chunk offset
	adjusted := make([]document.WordSegment, len(res.Words))
	for i, w := range res.Words {
		adjusted[i] = document.WordSegment{Word: w.Word, Start: w.Start + chunk.Start}
	}
	return adjusted, nil
}

// TranscribeChunks runs a transcriber over audio chunks in parallel
// and merges the word streams in order, offsetting each chunk's
// timestamps by its position in the original audio.
func TranscribeChunks(ctx context.Context, t WordTranscriber, chunks []media.ChunkInfo, concurrency int) (*Result, error) {
	if len(chunks) == 0 {
		return &Result{}, nil
	}
	if concurrency <= 0 {
		concurrency = 3
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workChan := make(chan media.ChunkInfo)
	resultChan := make(chan chunkResult, len(chunks))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case chunk, ok := <-workChan:
					if !ok {
						return
					}
					if ctx.Err() != nil {
						return
					}

					words, err := transcribeChunk(ctx, t, chunk)
					if err != nil {
						cancel()
					}
					resultChan <- chunkResult{
						Index: chunk.Index,
						Words: words,
						Error: err,
					}
				}
			}
		}()
	}

	go func() {
		defer close(workChan)
		for _, chunk := range chunks {
			select {
			case <-ctx.Done():
				return
			case workChan <- chunk:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]chunkResult, 0, len(chunks))
	var firstErr error
	for result := range resultChan {
		if result.Error != nil && firstErr == nil {
			firstErr = fmt.Errorf("chunk %d failed: %w", result.Index, result.Error)
			cancel()
		}
		if result.Error == nil {
			results = append(results, result)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	// sort by index to maintain order
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})

	var allWords []document.WordSegment
	for _, r := range results {
		allWords = append(allWords, r.Words...)
	}

	return &Result{
		Words:    allWords,
		Duration: chunks[len(chunks)-1].End,
	}, nil
}
