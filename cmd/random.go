package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jsphweid/staffnote/diag"
	"github.com/jsphweid/staffnote/note"
	"github.com/jsphweid/staffnote/sample"
	"github.com/spf13/cobra"
)

var (
	randomOutput outputOptions
	randomSeed   int64
)

func init() {
	rootCmd.AddCommand(randomCmd)
	randomOutput.register(randomCmd)
	randomCmd.Flags().Int64Var(&randomSeed, "seed", 0, "seed for the note picker, 0 picks one from the clock")
}

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Renders a random note",
	Long:  `Renders a random half note, quarter note or pair of eighth notes. The notes drawn are printed to stderr.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		seed := randomSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		notes := sample.Random(rand.New(rand.NewSource(seed)))
		fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", notes)

		img, err := note.NewRenderer(cfg.Layout, diag.NewLogSink()).RenderAll(notes)
		if err != nil {
			return err
		}
		return randomOutput.write(cmd.OutOrStdout(), img)
	},
}
