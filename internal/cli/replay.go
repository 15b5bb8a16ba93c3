package cli

import (
	"fmt"

	"github.com/hmaru/subedit/internal/editor"
	"github.com/hmaru/subedit/internal/media"
	"github.com/hmaru/subedit/internal/store"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay [document_file]",
	Short: "Walk a document's edit history backward or forward",
	Long: `Walk a document's edit history backward or forward.

The document carries its full edit log, so editing steps from earlier
sessions can be undone or re-applied here. Without --save the result
is only reported, not written back.

Examples:
  subedit replay talk.json --undo 3
  subedit replay talk.json --redo 1 --save`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().Int("undo", 0, "Number of steps to undo")
	replayCmd.Flags().Int("redo", 0, "Number of steps to redo")
	replayCmd.Flags().Bool("save", false, "Write the result back to the document")
}

func runReplay(cmd *cobra.Command, args []string) error {
	docPath := args[0]

	undoSteps, _ := cmd.Flags().GetInt("undo")
	redoSteps, _ := cmd.Flags().GetInt("redo")
	save, _ := cmd.Flags().GetBool("save")

	if undoSteps < 0 || redoSteps < 0 {
		return fmt.Errorf("step counts must not be negative")
	}

	doc, err := store.Load(docPath)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	session, err := editor.Resume(doc, media.NewClock(), logger)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}

	log := session.Log()
	logger.Infow("Loaded edit history",
		"entries", log.Len(),
		"position", log.Index()+1,
	)

	undone, redone := 0, 0
	for i := 0; i < undoSteps && log.CanUndo(); i++ {
		if err := session.Undo(); err != nil {
			return fmt.Errorf("undo step %d failed: %w", i+1, err)
		}
		undone++
	}
	for i := 0; i < redoSteps && log.CanRedo(); i++ {
		if err := session.Redo(); err != nil {
			return fmt.Errorf("redo step %d failed: %w", i+1, err)
		}
		redone++
	}

	if save {
		if err := session.Save(cmd.Context(), filePersister{path: docPath}); err != nil {
			return fmt.Errorf("failed to save document: %w", err)
		}
	}

	fmt.Printf("Undid %d and redid %d steps; %d lines, history position %d/%d\n",
		undone, redone, session.Subtitle().Len(), log.Index()+1, log.Len())
	if !save {
		fmt.Println("Dry run: pass --save to write the result back")
	}
	return nil
}
