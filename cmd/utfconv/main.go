package main

import (
	"os"

	"github.com/oy3o/utfconv/cmd/utfconv/cli"
)

func main() {
	if err := cli.Main.Execute(); err != nil {
		os.Exit(1)
	}
}
