package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/hanzi/internal/app"
	"github.com/abhisek/hanzi/internal/session"
)

// runApp launches the TUI. A non-empty mode skips the home menu.
func runApp(cmd *cobra.Command, mode session.Mode) error {
	env, err := openEnv(cmd, envOptions{tui: true, llm: true, grading: true})
	if err != nil {
		return err
	}
	defer env.Close()

	deckRef := env.cfg.Practice.SelectedDeck
	if cmd.Flags().Lookup("deck") != nil {
		if d, _ := cmd.Flags().GetString("deck"); d != "" {
			deckRef = d
		}
	}
	if deckRef != "" && env.svc.Collection().Lookup(deckRef) == nil {
		return fmt.Errorf("unknown deck %q", deckRef)
	}

	return app.Run(cmd.Context(), env.svc, app.Options{
		StartMode: mode,
		DeckRef:   deckRef,
		QueueSize: env.cfg.Practice.QueueSize,
	})
}
