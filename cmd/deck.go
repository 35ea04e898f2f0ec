package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/hanzi/internal/deck"
	"github.com/abhisek/hanzi/internal/practice"
	"github.com/abhisek/hanzi/internal/spacedrep"
	"github.com/abhisek/hanzi/internal/store"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage study decks",
}

var deckListCmd = &cobra.Command{
	Use:   "list",
	Short: "List decks with their review counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer env.Close()

		now := env.svc.Now()
		fmt.Printf("%-36s  %-24s  %6s  %5s  %5s  %8s  %6s  %s\n",
			"ID", "Name", "Cards", "New", "Due", "Learning", "Review", "Active")
		fmt.Println(strings.Repeat("─", 110))
		for _, d := range env.svc.Collection().Decks() {
			counts := d.Counts(now)
			active := ""
			if d.Active {
				active = "✓"
			}
			fmt.Printf("%-36s  %-24s  %6d  %5d  %5d  %8d  %6d  %s\n",
				d.ID, truncate(d.Name, 24), len(d.Cards),
				counts[spacedrep.ReviewNew], counts[spacedrep.ReviewDue],
				counts[spacedrep.ReviewLearning], counts[spacedrep.ReviewMature], active)
		}
		return nil
	},
}

var deckAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, _ := cmd.Flags().GetString("description")
		env, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer env.Close()

		d, err := env.svc.AddDeck(cmd.Context(), deck.DeckInput{Name: args[0], Description: desc})
		if err != nil {
			return err
		}
		fmt.Printf("Created deck %q (%s)\n", d.Name, d.ID)
		return nil
	},
}

var deckRmCmd = &cobra.Command{
	Use:   "rm <deck>",
	Short: "Delete a deck and its cards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer env.Close()

		d, err := lookupDeck(env.svc, args[0])
		if err != nil {
			return err
		}
		ok, err := env.svc.DeleteDeck(cmd.Context(), d.ID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("deck %q cannot be deleted", d.Name)
		}
		fmt.Printf("Deleted deck %q\n", d.Name)
		return nil
	},
}

var deckActivateCmd = &cobra.Command{
	Use:   "activate <deck>",
	Short: "Include a deck in active practice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		off, _ := cmd.Flags().GetBool("off")
		env, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer env.Close()

		d, err := lookupDeck(env.svc, args[0])
		if err != nil {
			return err
		}
		if _, err := env.svc.SetDeckActive(cmd.Context(), d.ID, !off); err != nil {
			return err
		}
		state := "active"
		if off {
			state = "inactive"
		}
		fmt.Printf("Deck %q is now %s\n", d.Name, state)
		return nil
	},
}

var deckImportCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Import a deck document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(args[0])
		if err != nil {
			return err
		}
		env, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer env.Close()

		res, err := env.svc.ImportDecks(cmd.Context(), raw)
		if err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}
		printImport(res)
		return nil
	},
}

var deckExportCmd = &cobra.Command{
	Use:   "export [deck...]",
	Short: "Export decks as a deck document",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		env, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer env.Close()

		ids := make([]string, 0, len(args))
		for _, ref := range args {
			d, err := lookupDeck(env.svc, ref)
			if err != nil {
				return err
			}
			ids = append(ids, d.ID)
		}
		raw, err := env.svc.ExportDecks(ids...)
		if err != nil {
			return err
		}
		if out == "" || out == "-" {
			_, err = os.Stdout.Write(append(raw, '\n'))
			return err
		}
		if err := os.WriteFile(out, raw, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", out)
		return nil
	},
}

var deckSyncCmd = &cobra.Command{
	Use:   "sync [git-url...]",
	Short: "Fetch deck documents from git repositories",
	Long: `Clone or pull each repository and import every deck document in it.
With no arguments the repositories listed under decks.sources are synced.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer env.Close()

		sources := args
		if len(sources) == 0 {
			sources = env.cfg.Decks.Sources
		}
		if len(sources) == 0 {
			return usageErrorf("no sources given and decks.sources is empty")
		}

		cacheDir := env.cfg.Decks.CacheDir
		if cacheDir == "" {
			dir, err := store.DataDir()
			if err != nil {
				return err
			}
			cacheDir = filepath.Join(dir, "sources")
		}

		var failed int
		for _, url := range sources {
			fmt.Printf("Syncing %s\n", url)
			res, err := env.svc.SyncSource(cmd.Context(), url, cacheDir)
			if err != nil {
				fmt.Fprintln(os.Stderr, "  failed:", err)
				failed++
				continue
			}
			printImport(res)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d sources failed", failed, len(sources))
		}
		return nil
	},
}

func lookupDeck(svc *practice.Service, ref string) (*deck.Deck, error) {
	d := svc.Collection().Lookup(ref)
	if d == nil {
		return nil, fmt.Errorf("unknown deck %q", ref)
	}
	return d, nil
}

// readInput reads a file, or stdin for "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, nil
}

func printImport(res deck.ImportResult) {
	fmt.Printf("  %d decks added, %d merged, %d cards added, %d updated\n",
		res.DecksAdded, res.DecksMerged, res.CardsAdded, res.CardsUpdated)
	if res.CardsReassigned > 0 {
		fmt.Printf("  %d cards got new ids to avoid clashing with existing cards\n", res.CardsReassigned)
	}
}

func init() {
	deckAddCmd.Flags().StringP("description", "d", "", "deck description")
	deckActivateCmd.Flags().Bool("off", false, "deactivate instead")
	deckExportCmd.Flags().StringP("output", "o", "", "output file (default stdout)")

	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckAddCmd)
	deckCmd.AddCommand(deckRmCmd)
	deckCmd.AddCommand(deckActivateCmd)
	deckCmd.AddCommand(deckImportCmd)
	deckCmd.AddCommand(deckExportCmd)
	deckCmd.AddCommand(deckSyncCmd)
}
