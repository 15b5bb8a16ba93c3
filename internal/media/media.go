// Package media wraps ffmpeg/ffprobe for the editing core: duration
// probing, audio extraction for recognition input, and an offline
// playback clock.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// JSON output from ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe returns the duration of an audio/video file.
func Probe(path string) (time.Duration, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return 0, fmt.Errorf("file not found: %s", path)
	}

	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe ffprobeOutput
	if err := json.Unmarshal([]byte(out), &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	var seconds float64
	if _, err := fmt.Sscanf(probe.Format.Duration, "%f", &seconds); err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}

// ExtractAudio pulls a mono compressed audio track out of a media
// file, the shape the recognition providers expect.
func ExtractAudio(ctx context.Context, inputPath, outputPath string) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	kwargs := ffmpeg.KwArgs{
		"vn":     "", // No video
		"ar":     16000,
		"ac":     1,
		"acodec": "libmp3lame",
		"b:a":    "64k",
		"y":      "",
	}

	err := ffmpeg.Input(inputPath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		Run()
	if err != nil {
		return fmt.Errorf("audio extraction failed: %w", err)
	}
	return nil
}

// ChunkInfo describes one audio chunk cut for transcription.
type ChunkInfo struct {
	Path  string
	Index int
	Start time.Duration
	End   time.Duration
}

// ChunkAudio splits an audio file into fixed-duration chunks so the
// recognition providers can work in parallel.
func ChunkAudio(ctx context.Context, audioPath string, chunkDuration time.Duration, outputDir string) ([]ChunkInfo, error) {
	if chunkDuration <= 0 {
		return nil, fmt.Errorf("chunk duration must be positive, got %v", chunkDuration)
	}

	total, err := Probe(audioPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create chunk directory: %w", err)
	}

	var chunks []ChunkInfo
	for index, start := 0, time.Duration(0); start < total; index, start = index+1, start+chunkDuration {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		end := start + chunkDuration
		if end > total {
			end = total
		}
		chunkPath := filepath.Join(outputDir, fmt.Sprintf("chunk_%03d.mp3", index))

		kwargs := ffmpeg.KwArgs{
			"ss": start.Seconds(),
			"t":  (end - start).Seconds(),
			"y":  "",
			"c":  "copy", // Copy codec for speed
		}
		err := ffmpeg.Input(audioPath).
			Output(chunkPath, kwargs).
			OverWriteOutput().
			Run()
		if err != nil {
			return nil, fmt.Errorf("failed to create chunk %d: %w", index, err)
		}

		chunks = append(chunks, ChunkInfo{Path: chunkPath, Index: index, Start: start, End: end})
	}
	return chunks, nil
}

// CleanupChunks removes all chunk files.
func CleanupChunks(chunks []ChunkInfo) error {
	var lastErr error
	for _, chunk := range chunks {
		if err := os.Remove(chunk.Path); err != nil && !os.IsNotExist(err) {
			lastErr = err
		}
	}
	return lastErr
}

// IsVideoFile checks the extension for a known video container.
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	videoExts := map[string]bool{
		".mp4":  true,
		".mkv":  true,
		".avi":  true,
		".mov":  true,
		".wmv":  true,
		".flv":  true,
		".webm": true,
		".m4v":  true,
		".mpeg": true,
		".mpg":  true,
	}
	return videoExts[ext]
}

// IsAudioFile checks the extension for a known audio format.
func IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	audioExts := map[string]bool{
		".mp3":  true,
		".wav":  true,
		".aac":  true,
		".flac": true,
		".ogg":  true,
		".m4a":  true,
		".wma":  true,
	}
	return audioExts[ext]
}

// IsMediaFile checks for either audio or video.
func IsMediaFile(path string) bool {
	return IsAudioFile(path) || IsVideoFile(path)
}
