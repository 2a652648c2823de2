package main

import (
	"os"
	_ "time/tzdata"
)

func main() {
	if err := newRootCommand(commandDeps{}).Execute(); err != nil {
		os.Exit(1)
	}
}
