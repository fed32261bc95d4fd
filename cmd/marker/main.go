package main

import (
	"os"

	"github.com/viant/marker/cmd/marker/command"
)

func main() {
	if err := command.New(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
