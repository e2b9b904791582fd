package main

import (
	"os"

	"github.com/Anuragt1104/solmentor/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
