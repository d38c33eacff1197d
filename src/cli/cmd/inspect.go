package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sofmeright/govdeck/src/inspect"
	"github.com/sofmeright/govdeck/src/output"
)

var inspectBody bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pptx>",
	Short: "Show the slides of a presentation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slides, err := inspect.Read(args[0])
		if err != nil {
			return err
		}

		sec := output.NewSection(cmd.OutOrStdout(), output.DetectStyle(), filepath.Base(args[0]), "")
		sec.Slides(slides, inspectBody)
		sec.Rule()
		sec.Row("%d slides", len(slides))
		sec.Close()
		return nil
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectBody, "body", false, "print body text under each title")

	rootCmd.AddCommand(inspectCmd)
}
