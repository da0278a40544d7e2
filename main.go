package main

import (
	"github.com/jsphweid/staffnote/cmd"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver for listen
)

func main() {
	cmd.Execute()
}
