package cli

import (
	"github.com/hmaru/subedit/internal/config"
	"github.com/hmaru/subedit/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "subedit",
	Short: "Subtitle editor with word-level timing and full undo history",
	Long: `Subedit edits subtitle documents built from word-level transcripts.

Documents carry their complete edit history, so a session can be saved,
reopened, and undone past the save point. Subtitles import from and
export to SRT and VTT.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)
		path := configPath
		if path == "" {
			path = "subedit.yaml"
		}
		var err error
		cfg, err = config.Load(path)
		return err
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", "", "Config file path (default subedit.yaml if present)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
