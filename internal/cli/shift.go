package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/hmaru/subedit/internal/editor"
	"github.com/hmaru/subedit/internal/media"
	"github.com/hmaru/subedit/internal/store"
	"github.com/spf13/cobra"
)

var shiftCmd = &cobra.Command{
	Use:   "shift [document_file]",
	Short: "Shift every line of a document by a time offset",
	Long: `Shift every line of a document by a time offset.

The shift is recorded in the document's edit history, so it can be
undone after reopening.

Examples:
  subedit shift talk.json --by 1.5s
  subedit shift talk.json --by -500ms`,
	Args: cobra.ExactArgs(1),
	RunE: runShift,
}

func init() {
	rootCmd.AddCommand(shiftCmd)

	shiftCmd.Flags().
		String("by", "", "Offset as a duration, e.g. 1.5s or -500ms")
	_ = shiftCmd.MarkFlagRequired("by")
}

// writes the document back to its file
type filePersister struct {
	path string
}

func (p filePersister) Persist(ctx context.Context, doc *store.Document) error {
	return store.Save(doc, p.path)
}

func runShift(cmd *cobra.Command, args []string) error {
	docPath := args[0]

	byStr, _ := cmd.Flags().GetString("by")
	offset, err := time.ParseDuration(byStr)
	if err != nil {
		return fmt.Errorf("invalid offset %q: %w", byStr, err)
	}

	doc, err := store.Load(docPath)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	session, err := editor.Resume(doc, media.NewClock(), logger)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}

	if !session.ShiftAll(offset) {
		return fmt.Errorf("nothing to shift: document has no lines")
	}

	if err := session.Save(cmd.Context(), filePersister{path: docPath}); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	fmt.Printf("Shifted %d lines by %s\n", session.Subtitle().Len(), offset)
	return nil
}
