// Package main is the entry point for the sous CLI.
package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/socialchef/sous/cmd/sous/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
