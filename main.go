package main

import (
	"os"

	"github.com/abhisek/logiq/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
