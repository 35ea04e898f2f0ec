package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/hanzi/internal/hanzi"
)

var resetCmd = &cobra.Command{
	Use:   "reset [characters]",
	Short: "Forget mastery for some or all characters",
	Long: `Reset the mastery estimate of the given characters to unseen, or of
every character when none are given. Deck schedules are not touched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		var chars []hanzi.Char
		if len(args) == 1 {
			chars = hanzi.Distinct(hanzi.Split(args[0]))
			if len(chars) == 0 {
				return usageErrorf("no characters in %q", args[0])
			}
		}

		if !yes {
			target := "ALL characters"
			if len(chars) > 0 {
				target = hanzi.Join(chars)
			}
			fmt.Printf("Reset mastery for %s? [y/N] ", target)
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		env, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.svc.ResetMastery(cmd.Context(), chars...); err != nil {
			return err
		}
		fmt.Println("Mastery reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
}
