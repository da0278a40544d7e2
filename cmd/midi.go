package cmd

import (
	"errors"
	"fmt"

	"github.com/jsphweid/staffnote/diag"
	"github.com/jsphweid/staffnote/midi"
	"github.com/jsphweid/staffnote/note"
	"github.com/spf13/cobra"
)

var (
	exportPath   string
	importOutput outputOptions
)

func init() {
	rootCmd.AddCommand(midiCmd)
	midiCmd.AddCommand(midiExportCmd, midiImportCmd)

	midiExportCmd.Flags().StringVarP(&exportPath, "out", "o", "", "midi file to write")
	_ = midiExportCmd.MarkFlagRequired("out")
	importOutput.register(midiImportCmd)
}

var midiCmd = &cobra.Command{
	Use:   "midi",
	Short: "Converts notes to and from MIDI files",
}

var midiExportCmd = &cobra.Command{
	Use:   "export PITCH DURATION [PITCH DURATION]",
	Short: "Writes a note, or a pair of eighth notes, to a MIDI file",
	Args: func(cmd *cobra.Command, args []string) error {
		_, err := parseNotes(args)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := parseNotes(args)
		if err != nil {
			return err
		}
		// only export what could also be drawn
		var second *note.Descriptor
		if len(notes) == 2 {
			second = &notes[1]
		}
		if err := note.Validate(notes[0], second); err != nil {
			return err
		}
		return midi.WriteFile(exportPath, notes)
	},
}

var midiImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Renders the first note, or eighth note pair, of a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		notes, err := midi.Notes(s)
		if errors.Is(err, midi.ErrNoNotes) {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		if err != nil {
			return err
		}

		group := midi.FirstGroup(notes)
		fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", group)
		img, err := note.NewRenderer(cfg.Layout, diag.NewLogSink()).RenderAll(group)
		if err != nil {
			return err
		}
		return importOutput.write(cmd.OutOrStdout(), img)
	},
}
