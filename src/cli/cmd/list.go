package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sofmeright/govdeck/src/deck"
	"github.com/sofmeright/govdeck/src/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in decks",
	RunE: func(cmd *cobra.Command, args []string) error {
		var decks []*deck.Deck
		for _, name := range deck.Names() {
			d, err := deck.Builtin(name)
			if err != nil {
				return err
			}
			decks = append(decks, d)
		}

		sec := output.NewSection(cmd.OutOrStdout(), output.DetectStyle(), "Decks", fmt.Sprintf("%d built-in", len(decks)))
		sec.Catalog(decks)
		sec.Close()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
