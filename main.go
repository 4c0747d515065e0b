package main

import (
	"os"

	"github.com/projectatomic/papr-trigger/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
