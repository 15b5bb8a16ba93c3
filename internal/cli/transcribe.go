package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hmaru/subedit/internal/asr"
	"github.com/hmaru/subedit/internal/document"
	"github.com/hmaru/subedit/internal/editor"
	"github.com/hmaru/subedit/internal/media"
	"github.com/hmaru/subedit/internal/store"
	"github.com/spf13/cobra"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [media_file] [document_file]",
	Short: "Bind word-level timestamps from a media file onto a document",
	Long: `Transcribe a media file and bind the word timestamps onto the
lines of an existing document.

The command accepts both audio files (mp3, wav, aac, etc.) and video
files (mp4, mkv, etc.). For video files, audio is automatically
extracted first. The audio is split into chunks and transcribed in
parallel.

Each recognized word lands on the line whose time range contains it.
Words outside every line seed the document's span pool when the pool
is empty.

Examples:
  subedit transcribe talk.mp4 talk.json
  subedit transcribe talk.mp3 talk.json --provider gemini --concurrency 5`,
	Args: cobra.ExactArgs(2),
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)

	transcribeCmd.Flags().
		StringP("api-key", "k", "", "API key (or set OPENAI_API_KEY / GEMINI_API_KEY)")
	transcribeCmd.Flags().
		String("provider", "", "Recognition provider, openai or gemini (default from config)")
	transcribeCmd.Flags().
		String("model", "", "Model to use for transcription")
	transcribeCmd.Flags().
		StringP("language", "l", "", "Language code of the audio (e.g. en, es, fr)")
	transcribeCmd.Flags().
		IntP("chunk-duration", "d", 0, "Chunk duration in minutes for splitting audio")
	transcribeCmd.Flags().
		Int("concurrency", 0, "Number of parallel transcription workers")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	mediaPath, docPath := args[0], args[1]
	ctx := cmd.Context()

	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", mediaPath)
	}
	if !media.IsMediaFile(mediaPath) {
		return fmt.Errorf("unsupported file type: %s (expected audio or video file)", filepath.Ext(mediaPath))
	}

	doc, err := store.Load(docPath)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	providerStr, _ := cmd.Flags().GetString("provider")
	if providerStr == "" {
		providerStr = cfg.Provider
	}
	provider := asr.Provider(providerStr)

	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		switch provider {
		case asr.ProviderOpenAI:
			apiKey = os.Getenv("OPENAI_API_KEY")
		case asr.ProviderGemini:
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required: use --api-key or the provider's environment variable")
	}

	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = cfg.Model
	}
	language, _ := cmd.Flags().GetString("language")
	if language == "" {
		language = cfg.Language
	}
	chunkMinutes, _ := cmd.Flags().GetInt("chunk-duration")
	if chunkMinutes <= 0 {
		chunkMinutes = cfg.ChunkMinutes
	}
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency <= 0 {
		concurrency = cfg.Concurrency
	}

	tempDir, err := os.MkdirTemp("", "subedit-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	audioPath := filepath.Join(tempDir, "audio.mp3")
	logger.Infow("Preparing audio",
		"input", mediaPath,
		"video", media.IsVideoFile(mediaPath),
	)
	if err := media.ExtractAudio(ctx, mediaPath, audioPath); err != nil {
		return fmt.Errorf("failed to prepare audio: %w", err)
	}

	duration, err := media.Probe(audioPath)
	if err != nil {
		return fmt.Errorf("failed to get audio duration: %w", err)
	}
	logger.Infow("Audio prepared", "duration", duration.String())

	chunkDir := filepath.Join(tempDir, "chunks")
	chunkDur := time.Duration(chunkMinutes) * time.Minute
	chunks, err := media.ChunkAudio(ctx, audioPath, chunkDur, chunkDir)
	if err != nil {
		return fmt.Errorf("failed to split audio: %w", err)
	}
	defer func() { _ = media.CleanupChunks(chunks) }()
	logger.Infow("Created audio chunks", "count", len(chunks))

	transcriber, err := asr.Factory(ctx, provider, apiKey, asr.Options{
		Language: language,
		Model:    model,
	})
	if err != nil {
		return fmt.Errorf("failed to create transcriber: %w", err)
	}

	logger.Infow("Transcribing audio",
		"provider", provider,
		"concurrency", concurrency,
	)
	result, err := asr.TranscribeChunks(ctx, transcriber, chunks, concurrency)
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}
	logger.Infow("Transcription complete", "words", len(result.Words))

	session, err := editor.Resume(doc, media.NewClock(), logger)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	sub := session.Subtitle()

	bound := bindWordsToLines(sub, result.Words)

	if sub.Transcript.Len() == 0 {
		var leftover []string
		for _, w := range result.Words {
			if sub.LineAt(w.Start) == nil {
				leftover = append(leftover, w.Word)
			}
		}
		sub.Transcript.Load(strings.Join(leftover, " "))
	}

	if err := session.Save(ctx, filePersister{path: docPath}); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	fmt.Printf("Bound %d of %d words onto %d lines in %s\n",
		bound, len(result.Words), sub.Len(), docPath)
	return nil
}

// distributes the word feed onto lines by time range and returns the
// number of words that landed on a line
func bindWordsToLines(sub *document.Subtitle, words []document.WordSegment) int {
	bound := 0
	for _, line := range sub.Lines() {
		var feed []document.WordSegment
		for _, w := range words {
			if line.Contains(w.Start) {
				feed = append(feed, w)
			}
		}
		if len(feed) == 0 {
			continue
		}
		document.BindWords(line, feed)
		bound += len(feed)
	}
	return bound
}
