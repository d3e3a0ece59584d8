package main

import (
	"fmt"
	"os"

	"github.com/example/madar/internal/cli"
	"github.com/example/madar/internal/wire"
)

func main() {
	rootCmd := cli.RootCmd()

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.Report(err, wire.Logger()))
	}
	wire.Close()
	if err != nil {
		os.Exit(1)
	}
}
