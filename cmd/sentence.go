package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/hanzi/internal/hanzi"
	"github.com/abhisek/hanzi/internal/practice"
	"github.com/abhisek/hanzi/internal/sentence"
)

var sentenceCmd = &cobra.Command{
	Use:   "sentence",
	Short: "Generate example sentences from the characters you are learning",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		deckRef, _ := cmd.Flags().GetString("deck")

		env, err := openEnv(cmd, envOptions{llm: true})
		if err != nil {
			return err
		}
		defer env.Close()

		if deckRef == "" {
			deckRef = env.cfg.Practice.SelectedDeck
		}
		if len(env.svc.ActiveChars(deckRef)) == 0 {
			return errors.New("no characters to build sentences from; add cards or singles first")
		}

		for i := 0; i < count; i++ {
			p, err := env.svc.NextSentence(cmd.Context(), deckRef)
			if errors.Is(err, practice.ErrNoGenerator) {
				return err
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, "generation failed:", err)
				if sentence.IsValidation(err) {
					fmt.Fprintln(os.Stderr, "  the model kept producing invalid sentences; try a larger character set")
				}
				continue
			}
			fmt.Println(p.Native)
			fmt.Println("  " + p.Gloss)
			if len(p.Outside) > 0 {
				fmt.Printf("  (uses characters outside your set: %s)\n", hanzi.Join(p.Outside))
			}
		}
		return nil
	},
}

func init() {
	sentenceCmd.Flags().IntP("count", "n", 1, "number of sentences")
	sentenceCmd.Flags().String("deck", "", "deck id or name to center the character set on")
}
