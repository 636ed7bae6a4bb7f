// Command tickring hosts a tick-mark progress indicator in a terminal or
// renders its animation to PNG frames.
package main

import (
	"os"

	"github.com/go-drift/tickring/cmd/tickring/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
