// Command licensectl talks to a license server from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/juju/clock"
)

import _ "github.com/joho/godotenv/autoload"

func main() {
	root := newRootCommand(clock.WallClock, os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
