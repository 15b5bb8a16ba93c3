package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hmaru/subedit/internal/format"
	"github.com/hmaru/subedit/internal/store"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [document_file]",
	Short: "Export a subtitle document to SRT or VTT",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().
		StringP("format", "f", "", "Output format, srt or vtt (default from config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	docPath := args[0]

	doc, err := store.Load(docPath)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	sub, _, err := store.ToSubtitle(doc, logger)
	if err != nil {
		return fmt.Errorf("failed to rebuild document: %w", err)
	}

	formatStr, _ := cmd.Flags().GetString("format")
	if formatStr == "" {
		formatStr = cfg.Format
	}
	f, err := format.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	entries := make([]format.Entry, 0, sub.Len())
	for _, l := range sub.Lines() {
		entries = append(entries, format.Entry{Start: l.Start, End: l.End, Text: l.Content})
	}

	rendered, err := format.Render(entries, f)
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = strings.TrimSuffix(docPath, filepath.Ext(docPath)) + "." + string(f)
	}

	if err := os.WriteFile(outputPath, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	fmt.Printf("Exported %d lines to %s\n", len(entries), outputPath)
	return nil
}
