package main

import (
	"os"

	"github.com/cleanfocus/cleanfocus/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
