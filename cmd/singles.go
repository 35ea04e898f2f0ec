package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/hanzi/internal/hanzi"
)

var singlesCmd = &cobra.Command{
	Use:   "singles",
	Short: "Manage standalone practice characters",
}

var singlesSetCmd = &cobra.Command{
	Use:   "set <characters>",
	Short: "Replace the standalone characters added to active practice",
	Long: `Replace the standalone characters added to active practice. Every
character of the argument is used; whitespace and punctuation are ignored.
An empty string clears the list.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer env.Close()

		chars, err := env.svc.SetSingles(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%d standalone characters: %s\n", len(chars), hanzi.Join(chars))
		return nil
	},
}

var singlesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the standalone characters",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer env.Close()

		fmt.Println(hanzi.Join(env.svc.Singles()))
		return nil
	},
}

func init() {
	singlesCmd.AddCommand(singlesSetCmd)
	singlesCmd.AddCommand(singlesListCmd)
}
