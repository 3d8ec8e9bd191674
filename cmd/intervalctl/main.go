package main

import (
	"os"

	"github.com/henderiw/intervals/pkg/cli"
)

func main() {
	os.Exit(cli.Run())
}
