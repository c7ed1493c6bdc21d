package main

import (
	"os"

	"github.com/msto63/throwables/cmd/throwables/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
