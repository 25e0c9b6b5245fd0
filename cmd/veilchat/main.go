package main

import (
	"os"

	"veilchat/cmd/veilchat/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
