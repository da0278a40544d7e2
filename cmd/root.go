package cmd

import (
	"github.com/jsphweid/staffnote/config"
	"github.com/spf13/cobra"
)

// loaded before any subcommand runs
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "staffnote",
	Short: "Draws notes on a staff",
	Long: `Draws a half note, a quarter note or a pair of beamed eighth notes
on a five line staff, as SVG or PNG.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
