package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/hanzi/internal/config"
	"github.com/abhisek/hanzi/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "hanzi",
	Short: "Learn to read and write Chinese characters",
	Long: `hanzi is a terminal app for learning Chinese characters with spaced
repetition decks, mastery-driven character practice and generated example
sentences.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start a practice session directly",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, _ := cmd.Flags().GetString("mode")
		if mode != string(session.ModeDeck) && mode != string(session.ModeActive) {
			return usageErrorf("invalid mode %q: must be deck or active", mode)
		}
		return runApp(cmd, session.Mode(mode))
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, which commands see as
// cmd.Context().
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	config.BindFlags(rootCmd.PersistentFlags())

	practiceCmd.Flags().String("mode", string(session.ModeDeck), "practice mode: deck or active")
	practiceCmd.Flags().String("deck", "", "deck id or name (defaults to practice.selected_deck)")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(deckCmd)
	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(sentenceCmd)
	rootCmd.AddCommand(singlesCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
