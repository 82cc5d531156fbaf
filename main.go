package main

import (
	"os"

	"github.com/mpreston/factdrill/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
