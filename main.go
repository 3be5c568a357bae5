package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/eikafleet/devnamer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, cmd.ErrUsage) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
