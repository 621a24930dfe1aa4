package main

import (
	"os"

	"github.com/dshills/covdiff/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
