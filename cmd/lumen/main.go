package main

import (
	"fmt"
	"os"

	"github.com/kpauljoseph/lumen/internal/cli"
	"github.com/kpauljoseph/lumen/pkg/version"
)

func main() {
	if err := cli.Run(version.Version); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
