package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sofmeright/govdeck/src/build"
	"github.com/sofmeright/govdeck/src/deck"
)

var (
	exportFormat string
	exportRaw    bool
)

var exportCmd = &cobra.Command{
	Use:   "export <deck>",
	Short: "Print a deck as YAML, TOML or Markdown",
	Long: `Print the source of a deck.

Templates are expanded with the configured presenter details unless --raw
is given. A raw YAML or TOML export is a valid deck file and can be copied
into the project and referenced from decks[].file.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml", "output format: yaml, toml or markdown")
	exportCmd.Flags().BoolVar(&exportRaw, "raw", false, "keep templates unexpanded")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := deck.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	b := build.New(cfg, rootDir(), logger)
	decks, err := b.Select(cfg.Decks, args)
	if err != nil {
		return err
	}

	var d *deck.Deck
	if exportRaw {
		d, err = b.Load(decks[0])
	} else {
		d, err = b.Resolve(decks[0])
	}
	if err != nil {
		return err
	}

	data, err := deck.Marshal(d, format)
	if err != nil {
		return fmt.Errorf("exporting %s: %w", decks[0].ID, err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
