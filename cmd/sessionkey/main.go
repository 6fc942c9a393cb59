package main

import (
	"os"

	"sessionkey/cmd/sessionkey/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
