package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/jsphweid/staffnote/diag"
	staffmidi "github.com/jsphweid/staffnote/midi"
	"github.com/jsphweid/staffnote/note"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
)

var (
	listenPort  int
	listenBPM   float64
	listenQuiet time.Duration
	listenDir   string
)

func init() {
	rootCmd.AddCommand(listenCmd)
	listenCmd.Flags().IntVar(&listenPort, "port", 0, "midi in port number")
	listenCmd.Flags().Float64Var(&listenBPM, "bpm", 120, "tempo used to tell eighths, quarters and halves apart")
	listenCmd.Flags().DurationVar(&listenQuiet, "quiet", time.Second, "pause after which the notes played so far are drawn")
	listenCmd.Flags().StringVar(&listenDir, "dir", ".", "directory the svg files are written to")
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Draws notes played on a MIDI keyboard",
	Long: `Listens on a MIDI in port. Whenever playing pauses, the first note (or
pair of eighths) played since the last pause is drawn to an svg file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listen()
	},
}

func listen() error {
	defer midi.CloseDriver()
	in, err := midi.InPort(listenPort)
	if err != nil {
		return fmt.Errorf("can't find midi in port %d: %w", listenPort, err)
	}

	phrase := staffmidi.NewPhrase(listenBPM)
	renderer := note.NewRenderer(cfg.Layout, diag.NewLogSink())
	debounced := debounce.New(listenQuiet)
	flush := func() {
		group := staffmidi.FirstGroup(phrase.Take())
		if len(group) == 0 {
			return
		}
		img, err := renderer.RenderAll(group)
		if err != nil {
			// already reported by the renderer
			return
		}
		path := filepath.Join(listenDir, uuid.New().String()+".svg")
		if err := os.WriteFile(path, img.SVG(), 0o644); err != nil {
			log.Printf("Could not write %s: %v", path, err)
			return
		}
		log.Printf("%v -> %s", group, path)
	}

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			phrase.NoteOn(key, timestampms)
		case msg.GetNoteEnd(&ch, &key):
			phrase.NoteOff(key, timestampms)
			debounced(flush)
		default:
			// ignore
		}
	})
	if err != nil {
		return fmt.Errorf("listen on midi in port %d: %w", listenPort, err)
	}
	defer stop()

	log.Printf("Listening on %v, ctrl-c to stop", in)
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt
	return nil
}
