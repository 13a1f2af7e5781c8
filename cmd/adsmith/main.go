package main

import (
	"os"

	"github.com/adsmithhq/adsmith/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
