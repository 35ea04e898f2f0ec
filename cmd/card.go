package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/hanzi/internal/deck"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Manage cards",
}

var cardAddCmd = &cobra.Command{
	Use:   "add <deck> <term> [definition]",
	Short: "Add a card to a deck",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, _ := cmd.Flags().GetStringSlice("tag")
		notes, _ := cmd.Flags().GetString("notes")
		env, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer env.Close()

		d, err := lookupDeck(env.svc, args[0])
		if err != nil {
			return err
		}
		in := deck.CardInput{Term: args[1], Tags: tags, Notes: notes}
		if len(args) == 3 {
			in.Definition = args[2]
		}
		card, err := env.svc.AddCard(cmd.Context(), d.ID, in)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s to %q (%s)\n", card.Term, d.Name, card.ID)
		return nil
	},
}

var cardRmCmd = &cobra.Command{
	Use:   "rm <card-id>",
	Short: "Delete a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer env.Close()

		ok, err := env.svc.DeleteCard(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("unknown card %q", args[0])
		}
		fmt.Println("Deleted card", args[0])
		return nil
	},
}

func init() {
	cardAddCmd.Flags().StringSlice("tag", nil, "tag to attach (repeatable)")
	cardAddCmd.Flags().String("notes", "", "free-form notes")

	cardCmd.AddCommand(cardAddCmd)
	cardCmd.AddCommand(cardRmCmd)
}
