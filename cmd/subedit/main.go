package main

import (
	"os"

	"github.com/hmaru/subedit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
