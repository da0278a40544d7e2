package cmd

import (
	"strings"

	"github.com/jsphweid/staffnote/diag"
	"github.com/jsphweid/staffnote/note"
	"github.com/jsphweid/staffnote/util"
	"github.com/spf13/cobra"
)

var renderOutput outputOptions

func init() {
	rootCmd.AddCommand(renderCmd)
	renderOutput.register(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render PITCH DURATION [PITCH DURATION]",
	Short: "Renders a note, or a pair of eighth notes",
	Long: `Renders a half or quarter note, or two beamed eighth notes.

Pitches run from 1 (F4) to 7 (E5); names such as A4 work too.
Durations: ` + strings.Join(util.SortedKeys(note.DurationNames()), ", "),
	Example: `  staffnote render 3 quarter
  staffnote render 2 8n 6 8n --format png --out pair.png`,
	Args: func(cmd *cobra.Command, args []string) error {
		_, err := parseNotes(args)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := parseNotes(args)
		if err != nil {
			return err
		}
		renderer := note.NewRenderer(cfg.Layout, diag.NewLogSink())
		img, err := renderer.RenderAll(notes)
		if err != nil {
			return err
		}
		return renderOutput.write(cmd.OutOrStdout(), img)
	},
}
