package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hmaru/subedit/internal/document"
	"github.com/hmaru/subedit/internal/format"
	"github.com/hmaru/subedit/internal/history"
	"github.com/hmaru/subedit/internal/store"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [subtitle_file]",
	Short: "Import an SRT or VTT file into a subtitle document",
	Long: `Import an SRT or VTT file into an editable subtitle document.

The document is written as JSON and carries the lines, a cached SRT
rendering, and an empty edit history. An optional transcript text file
seeds the span pool used for quick line creation.

Examples:
  subedit import talk.srt
  subedit import talk.vtt --transcript talk.txt -o talk.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().
		StringP("transcript", "t", "", "Plain text transcript to seed the span pool")
	importCmd.Flags().
		String("header", "", "Document title header")
}

func runImport(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	f := format.FromExtension(inputPath)
	entries, err := format.Parse(string(data), f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", inputPath, err)
	}

	sub := document.NewSubtitle()
	for _, e := range entries {
		line := sub.Append()
		line.Start = e.Start
		line.End = e.End
		line.Content = e.Text
		line.SetOriginal()
	}

	transcriptPath, _ := cmd.Flags().GetString("transcript")
	if transcriptPath != "" {
		text, err := os.ReadFile(transcriptPath)
		if err != nil {
			return fmt.Errorf("failed to read transcript %s: %w", transcriptPath, err)
		}
		sub.Transcript.Load(string(text))
	}

	header, _ := cmd.Flags().GetString("header")
	if header == "" {
		header = strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	}

	doc, err := store.FromSubtitle(sub, history.NewLog(), header)
	if err != nil {
		return fmt.Errorf("failed to build document: %w", err)
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".json"
	}

	if err := store.Save(doc, outputPath); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	logger.Infow("Imported subtitle file",
		"input", inputPath,
		"output", outputPath,
		"lines", len(entries),
		"spans", sub.Transcript.Len(),
	)

	fmt.Printf("Imported %d lines into %s\n", len(entries), outputPath)
	return nil
}
