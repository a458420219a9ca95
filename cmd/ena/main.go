package main

import (
	"os"

	"github.com/ena-dev/ena/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
