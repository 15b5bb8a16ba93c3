package cli

import (
	"fmt"

	"github.com/hmaru/subedit/internal/store"
	"github.com/hmaru/subedit/internal/timecode"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [document_file]",
	Short: "Print a summary of a subtitle document",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().Bool("lines", false, "List every line with its timecodes")
}

func runInspect(cmd *cobra.Command, args []string) error {
	docPath := args[0]

	doc, err := store.Load(docPath)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	sub, log, err := store.ToSubtitle(doc, logger)
	if err != nil {
		return fmt.Errorf("failed to rebuild document: %w", err)
	}

	withWords := 0
	for _, l := range sub.Lines() {
		if len(l.WordSegments) > 0 {
			withWords++
		}
	}

	fmt.Printf("Document: %s\n", docPath)
	if doc.Header != "" {
		fmt.Printf("  Header: %s\n", doc.Header)
	}
	fmt.Printf("  Lines: %d (%d with word timing)\n", sub.Len(), withWords)
	if sub.Len() > 0 {
		first, last := sub.Line(0), sub.Line(sub.Len()-1)
		fmt.Printf("  Range: %s - %s\n", timecode.Format(first.Start), timecode.Format(last.End))
	}
	fmt.Printf("  Unbound spans: %d\n", sub.Transcript.Len())
	fmt.Printf("  History: %d entries, position %d\n", log.Len(), log.Index()+1)

	listLines, _ := cmd.Flags().GetBool("lines")
	if listLines {
		for _, l := range sub.Lines() {
			fmt.Printf("  %3d  %s - %s  %s\n",
				l.Index+1, timecode.Format(l.Start), timecode.Format(l.End), l.Content)
		}
	}
	return nil
}
