package main

import (
	"os"

	"github.com/hueshadow/leadscout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
