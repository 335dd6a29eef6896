// Command gbdebug loads a flat binary at a chosen address into a fresh CPU
// and launches the interactive step debugger. It performs no
// cartridge-header parsing or bank switching -- that is out of scope for the
// core this command exercises.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gbz80/cpu"
	"gbz80/mem"
)

var offset uint16

func main() {
	root := &cobra.Command{
		Use:   "gbdebug <rom-path>",
		Short: "Step through a Game Boy program with the interactive debugger",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	root.Flags().Uint16Var(&offset, "offset", 0x0100, "address to load the program at and start execution from")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("gbdebug: %w", err)
	}

	c := cpu.NewCPU(mem.NewBus())
	c.Debug(data, offset)
	return nil
}
