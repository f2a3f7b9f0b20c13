package main

import (
	"os"

	"ticketlens/cmd/ticketlens/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
