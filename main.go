package main

import (
	"os"

	"github.com/food-punch-karachi/server/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
