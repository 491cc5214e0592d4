package main

import (
	"os"

	"github.com/youruser/talingchan-deck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
