// Command hasm assembles source files for a pedagogical 15-bit word-addressed machine.
package main

import (
	"context"
	"os"

	"github.com/elsinore/hasm/internal/cli"
	"github.com/elsinore/hasm/internal/cli/cmd"
)

var commands = []cli.Command{
	cmd.Assembler(),
}

// Entry point.
func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
